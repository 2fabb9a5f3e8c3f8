package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/config"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/device"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/display"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/logger"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/pid"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/render"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/transport"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to acquire PID file")
	}
	defer pid.Remove()

	transports := buildTransports()

	// A real panel driver implements render.Display; the in-memory
	// framebuffer stands in when none is linked.
	panel := display.NewFramebuffer(render.ScreenWidth, render.ScreenHeight)
	engine := render.NewEngine(panel)

	ctrl := device.NewController(clockwork.NewRealClock(), engine, transports...)
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := ctrl.Run(ctx, time.Duration(cfg.PollInterval)*time.Millisecond); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}

func buildTransports() []transport.Transport {
	var transports []transport.Transport

	serialTr, err := transport.OpenSerial(cfg.SerialPort, cfg.BaudRate)
	if err != nil {
		logger.Warn().Err(err).Str("port", cfg.SerialPort).Msg("serial unavailable")
	} else {
		transports = append(transports, serialTr)
	}

	bt := transport.DetectBluetooth(cfg.DeviceName, cfg.BluetoothPort, cfg.BaudRate)
	transports = append(transports, bt)

	if serialTr == nil && !bt.Available() {
		logger.Fatal().Msg("no usable transport")
	}

	return transports
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
