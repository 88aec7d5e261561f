// Package daemon manages the background process lifecycle through a PID
// file: at most one watcher instance per PID file, stoppable via SIGTERM.
package daemon

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"syscall"
)

type Daemon struct {
	pidFile string
}

func New(pidFile string) *Daemon {
	return &Daemon{pidFile: pidFile}
}

// WritePID claims the PID file for this process. Claiming fails when another
// live watcher already holds it; a stale file from a dead watcher is taken
// over.
func (d *Daemon) WritePID() error {
	if running, pid, err := d.IsRunning(); err != nil {
		return err
	} else if running && pid != os.Getpid() {
		return fmt.Errorf("PID file %s is held by running watcher %d", d.pidFile, pid)
	}
	return os.WriteFile(d.pidFile, fmt.Appendf(nil, "%d", os.Getpid()), 0644)
}

func (d *Daemon) ReadPID() (int, error) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}

	return pid, nil
}

func (d *Daemon) RemovePID() error {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning reports whether the process named by the PID file is alive.
// A stale PID file (process gone) is cleaned up as a side effect.
func (d *Daemon) IsRunning() (bool, int, error) {
	pid, err := d.ReadPID()
	if err != nil {
		return false, 0, err
	}

	if pid == 0 {
		return false, 0, nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0, nil
	}

	if err := process.Signal(syscall.Signal(0)); err != nil {
		log.Printf("Removing stale PID file %s (watcher %d is gone)", d.pidFile, pid)
		d.RemovePID()
		return false, 0, nil
	}

	return true, pid, nil
}

// Stop sends SIGTERM to the running watcher and removes the PID file.
func (d *Daemon) Stop() error {
	running, pid, err := d.IsRunning()
	if err != nil {
		return fmt.Errorf("error checking watcher status: %w", err)
	}

	if !running {
		return fmt.Errorf("watcher is not running or PID file is stale")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err.Error() == "os: process already finished" {
			_ = d.RemovePID()
			return fmt.Errorf("watcher process already terminated")
		}
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	if err := d.RemovePID(); err != nil {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}

	return nil
}
