package transport

import (
	"sync"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
	"tinygo.org/x/bluetooth"
)

// Nordic UART style service layout, matching what the host-side tools
// scan for: one write characteristic inbound, one notify characteristic
// outbound.
var (
	uartServiceUUID, _ = bluetooth.ParseUUID("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
	uartRxUUID, _      = bluetooth.ParseUUID("6e400002-b5a3-f393-e0a9-e50e24dcca9e")
	uartTxUUID, _      = bluetooth.ParseUUID("6e400003-b5a3-f393-e0a9-e50e24dcca9e")
)

// BLE exposes the line protocol as a GATT peripheral. Writes from the peer
// queue behind a mutex and the control loop drains them with TryRead; that
// queue is the only cross-goroutine boundary in the ingestion path.
type BLE struct {
	tx      bluetooth.Characteristic
	mu      sync.Mutex
	pending []byte
}

// EnableBLE brings up the default adapter, registers the UART-style
// service and starts advertising under name.
func EnableBLE(name string) (*BLE, error) {
	errFactory := errors.New()
	b := &BLE{}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, errFactory.Wrap(ErrBluetoothInit, err)
	}

	err := adapter.AddService(&bluetooth.Service{
		UUID: uartServiceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &b.tx,
				UUID:   uartTxUUID,
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
			{
				UUID:  uartRxUUID,
				Flags: bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(_ bluetooth.Connection, _ int, value []byte) {
					b.enqueue(value)
				},
			},
		},
	})
	if err != nil {
		return nil, errFactory.Wrap(ErrBluetoothInit, err)
	}

	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{uartServiceUUID},
	}); err != nil {
		return nil, errFactory.Wrap(ErrBluetoothInit, err)
	}
	if err := adv.Start(); err != nil {
		return nil, errFactory.Wrap(ErrBluetoothInit, err)
	}

	return b, nil
}

// enqueue buffers one GATT write, appending a line terminator when the
// peer did not send one.
func (b *BLE) enqueue(value []byte) {
	if len(value) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, value...)
	if value[len(value)-1] != '\n' {
		b.pending = append(b.pending, '\n')
	}
}

func (*BLE) Name() string {
	return "ble"
}

func (*BLE) Available() bool {
	return true
}

func (b *BLE) TryRead(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := copy(p, b.pending)
	b.pending = b.pending[n:]
	return n, nil
}

// Notify writes the TX characteristic. No subscriber means nobody hears
// it; either way the caller does not care.
func (b *BLE) Notify(payload []byte) error {
	_, _ = b.tx.Write(payload)
	return nil
}

func (*BLE) Close() error {
	return nil
}
