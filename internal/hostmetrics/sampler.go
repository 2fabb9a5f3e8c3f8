package hostmetrics

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/logger"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Sample is one host reading of the five wire metrics. Metrics the host
// cannot provide carry the protocol sentinel.
type Sample struct {
	CPULoad  float64
	CPUTempC float64
	RAMLoad  float64
	GPULoad  float64
	GPUTempC float64
}

// CSV renders the record form the device parses: fixed field order, one
// decimal place.
func (s Sample) CSV() string {
	return fmt.Sprintf("%.1f,%.1f,%.1f,%.1f,%.1f",
		s.CPULoad, s.CPUTempC, s.RAMLoad, s.GPULoad, s.GPUTempC)
}

// Sampler reads host metrics. CPU and RAM come from gopsutil; GPU load and
// temperature come from NVML when a device is present.
type Sampler struct {
	nvmlReady bool
}

func NewSampler() *Sampler {
	s := &Sampler{}
	if ret := nvml.Init(); ret == nvml.SUCCESS {
		s.nvmlReady = true
	} else {
		logger.Debug().Str("reason", nvml.ErrorString(ret)).Msg("NVML unavailable, GPU metrics disabled")
	}
	return s
}

func (s *Sampler) Close() {
	if s.nvmlReady {
		_ = nvml.Shutdown()
	}
}

// Sample takes one reading. Individual sampling failures degrade to the
// sentinel (or zero for the always-present load metrics), never to an
// error: the sender keeps its cadence no matter what.
func (s *Sampler) Sample() Sample {
	out := Sample{
		CPUTempC: protocol.Unavailable,
		GPULoad:  protocol.Unavailable,
		GPUTempC: protocol.Unavailable,
	}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		out.CPULoad = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		out.RAMLoad = vm.UsedPercent
	}
	out.CPUTempC = cpuTemperature()

	if s.nvmlReady {
		out.GPULoad, out.GPUTempC = gpuMetrics()
	}

	return out
}

// cpuTemperature scans the sensor list for a CPU package reading.
func cpuTemperature() float64 {
	temps, err := sensors.SensorsTemperatures()
	if err != nil {
		return protocol.Unavailable
	}
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "k10temp") ||
			strings.Contains(key, "cpu") {
			return t.Temperature
		}
	}
	return protocol.Unavailable
}

func gpuMetrics() (load, temp float64) {
	load, temp = protocol.Unavailable, protocol.Unavailable

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		return load, temp
	}
	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return load, temp
	}

	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		load = float64(util.Gpu)
	}
	if t, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		temp = float64(t)
	}
	return load, temp
}
