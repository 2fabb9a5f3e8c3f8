package config

import (
	"os"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultSerialPort   = "/dev/ttyACM0"
	defaultBaudRate     = 115200
	defaultDeviceName   = "WioMonitor"
	defaultPollInterval = 10
)

// Config holds the monitor daemon settings. Flags override file values,
// which override defaults.
type Config struct {
	SerialPort    string `mapstructure:"serial_port"`
	BaudRate      int    `mapstructure:"baud_rate"`
	DeviceName    string `mapstructure:"device_name"`
	BluetoothPort string `mapstructure:"bluetooth_port"`
	PollInterval  int    `mapstructure:"poll_interval"`
	LogLevel      string `mapstructure:"log_level"`
	Debug         bool   `mapstructure:"debug"`
	Verbose       bool   `mapstructure:"verbose"`
}

func Load() (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("serial_port", defaultSerialPort)
	v.SetDefault("baud_rate", defaultBaudRate)
	v.SetDefault("device_name", defaultDeviceName)
	v.SetDefault("bluetooth_port", "")
	v.SetDefault("poll_interval", defaultPollInterval)
	v.SetDefault("log_level", DefaultLogLevel)

	flags := pflag.NewFlagSet("wiomon", pflag.ContinueOnError)
	flags.String("serial-port", defaultSerialPort, "Serial port carrying telemetry lines")
	flags.Int("baud-rate", defaultBaudRate, "Serial baud rate")
	flags.String("device-name", defaultDeviceName, "Advertised Bluetooth device name")
	flags.String("bluetooth-port", "", "RFCOMM device path used when BLE is unavailable")
	flags.Int("poll-interval", defaultPollInterval, "Control loop poll interval in milliseconds")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Load configuration from file, if one exists
	if path := os.Getenv("WIOMON_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wiomon")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
	}

	// Override config file values with command line flags
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "serial-port":
			v.Set("serial_port", f.Value.String())
		case "baud-rate":
			v.Set("baud_rate", f.Value.String())
		case "device-name":
			v.Set("device_name", f.Value.String())
		case "bluetooth-port":
			v.Set("bluetooth_port", f.Value.String())
		case "poll-interval":
			v.Set("poll_interval", f.Value.String())
		case "log-level":
			v.Set("log_level", f.Value.String())
		case "debug":
			v.Set("debug", f.Value.String())
		case "verbose":
			v.Set("verbose", f.Value.String())
		}
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.applyLogLevel()

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.New(errors.ErrInvalidLogLevel).WithData(c.LogLevel)
	}

	if c.PollInterval <= 0 {
		return errFactory.New(errors.ErrInvalidInterval).WithData(c.PollInterval)
	}

	if c.BaudRate <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "Invalid baud rate").WithData(c.BaudRate)
	}

	return nil
}

func (c *Config) applyLogLevel() {
	switch {
	case c.Debug || c.LogLevel == "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case c.Verbose || c.LogLevel == "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case c.LogLevel == "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}
