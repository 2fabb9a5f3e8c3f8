package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/hostmetrics"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/logger"
	"github.com/spf13/pflag"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const (
	baudRate        = 115200
	defaultInterval = 500 * time.Millisecond

	// Arduino-style boards reset when the port opens; give the monitor a
	// moment before the first record.
	settleDelay = 2 * time.Second
)

// portKeywords match USB descriptions of boards we expect on the other end.
var portKeywords = []string{"seeed", "wio", "seeeduino", "arduino", "usb serial", "cdc"}

var (
	portFlag  = pflag.String("port", "", "Serial port (auto-detect when empty)")
	interval  = pflag.Duration("interval", defaultInterval, "Send interval")
	dryRun    = pflag.Bool("dry-run", false, "Print metrics without opening serial")
	listPorts = pflag.Bool("list-ports", false, "List available serial ports and exit")
	verbose   = pflag.Bool("verbose", false, "Print each line sent")
	debug     = pflag.Bool("debug", false, "Enable debugging mode")
)

func main() {
	pflag.Parse()
	logger.Init(*debug, *verbose, logger.IsService())

	if *listPorts {
		printPorts()
		return
	}

	sampler := hostmetrics.NewSampler()
	defer sampler.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx, sampler); err != nil {
		logger.Error().Err(err).Msg("error in send loop")
		os.Exit(1)
	}
}

func run(ctx context.Context, sampler *hostmetrics.Sampler) error {
	var port serial.Port
	var path string

	if !*dryRun {
		var err error
		path, err = resolvePort()
		if err != nil {
			return err
		}
		port, err = openPort(path)
		if err != nil {
			return err
		}
		defer port.Close()
		logger.Info().Str("port", path).Int("baud", baudRate).Msg("Sending PC stats")
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Stopped")
			return nil
		case <-ticker.C:
			line := sampler.Sample().CSV() + "\n"
			if *dryRun {
				fmt.Print(line)
				continue
			}
			if _, err := port.Write([]byte(line)); err != nil {
				logger.Warn().Err(err).Msg("Write failed, reconnecting")
				port.Close()
				reopened, rerr := openPort(path)
				if rerr != nil {
					logger.Warn().Err(rerr).Msg("Reconnect failed")
					continue
				}
				port = reopened
				continue
			}
			if *verbose {
				logger.Info().Str("line", strings.TrimSpace(line)).Msg("Sent")
			}
		}
	}
}

// resolvePort returns the explicit --port, or auto-detects by USB
// description keywords, falling back to the first enumerated port.
func resolvePort() (string, error) {
	if *portFlag != "" {
		return *portFlag, nil
	}

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no serial port found; specify --port or plug in the device")
	}

	for _, p := range ports {
		desc := strings.ToLower(p.Product)
		for _, kw := range portKeywords {
			if strings.Contains(desc, kw) {
				return p.Name, nil
			}
		}
	}
	return ports[0].Name, nil
}

func openPort(path string) (serial.Port, error) {
	port, err := serial.Open(path, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	time.Sleep(settleDelay)
	return port, nil
}

func printPorts() {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		fmt.Printf("failed to enumerate serial ports: %v\n", err)
		os.Exit(1)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return
	}
	fmt.Println("Available serial ports:")
	for _, p := range ports {
		if p.IsUSB {
			fmt.Printf("- %s: %s (VID %s, PID %s)\n", p.Name, p.Product, p.VID, p.PID)
		} else {
			fmt.Printf("- %s\n", p.Name)
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	cancel()
}
