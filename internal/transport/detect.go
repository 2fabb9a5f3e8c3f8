package transport

import "github.com/mohsinyousufi/wio-pc-monitor/internal/logger"

// DetectBluetooth selects the best Bluetooth transport the platform offers:
// BLE GATT when the adapter comes up, a legacy RFCOMM serial port when one
// is configured, otherwise the stub. Runtime capability detection replaces
// what the firmware did with conditional compilation.
func DetectBluetooth(deviceName, rfcommPath string, baud int) Transport {
	ble, err := EnableBLE(deviceName)
	if err == nil {
		logger.Info().Str("transport", ble.Name()).Str("name", deviceName).Msg("Bluetooth ready")
		return ble
	}
	logger.Warn().Err(err).Msg("BLE unavailable")

	if rfcommPath != "" {
		bt, err := OpenBluetoothSerial(rfcommPath, baud)
		if err == nil {
			logger.Info().Str("transport", bt.Name()).Str("path", rfcommPath).Msg("Bluetooth ready")
			return bt
		}
		logger.Warn().Err(err).Str("path", rfcommPath).Msg("Bluetooth serial unavailable")
	}

	return Stub{}
}
