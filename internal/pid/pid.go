package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
)

const (
	pidFile = "wiomon.pid"
)

// Write writes the current process ID to a PID file. The monitor owns a
// serial port, so only one instance may run per machine.
func Write() error {
	errFactory := errors.New()
	pid := os.Getpid()
	path := filepath.Join(os.TempDir(), pidFile)

	if _, err := os.Stat(path); err == nil {
		// PID file exists, check if the process is running
		bytes, err := os.ReadFile(path)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		existing, err := strconv.Atoi(string(bytes))
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		process, err := os.FindProcess(existing)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		if err := process.Signal(syscall.Signal(0)); err == nil {
			return errFactory.New(errors.ErrAlreadyRunning).WithData(existing)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove deletes the PID file on shutdown.
func Remove() {
	_ = os.Remove(filepath.Join(os.TempDir(), pidFile))
}
