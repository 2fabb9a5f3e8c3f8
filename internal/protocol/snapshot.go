package protocol

import "fmt"

// Unavailable is the wire sentinel for a metric the host could not sample.
// Temperatures and GPU load carry it; the render side shows "N/A".
const Unavailable = -1.0

// Snapshot is one parsed telemetry record: the most recent known PC state.
// Immutable once constructed; the controller overwrites its current
// snapshot wholesale on every successful parse.
type Snapshot struct {
	CPULoad      float64
	TemperatureC float64
	RAMLoad      float64
	GPULoad      float64
	GPUTempC     float64
}

// Echo renders the outbound key:value form pushed to the Bluetooth notify
// channel. Distinct from the compact CSV wire form on purpose: it is meant
// for a human watching a GATT client.
func (s Snapshot) Echo() []byte {
	return fmt.Appendf(nil, "CPU:%.2f,TEMP:%.2f,RAM:%.2f,GPU:%.2f,G-TEMP:%.2f",
		s.CPULoad, s.TemperatureC, s.RAMLoad, s.GPULoad, s.GPUTempC)
}
