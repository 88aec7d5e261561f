package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bosswatch/internal/config"
	"bosswatch/internal/daemon"
)

const daemonChildEnv = "BOSSWATCH_DAEMON_CHILD"

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the watcher in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			dm := daemon.New(cfg.Daemon.PIDFile)
			running, pid, err := dm.IsRunning()
			if err != nil {
				return errors.Wrap(err, "failed to check watcher status")
			}
			if running {
				return fmt.Errorf("watcher is already running (PID: %d)", pid)
			}

			if os.Getenv(daemonChildEnv) != "1" {
				// Parent: fork a detached child and report.
				return daemonize(cfg)
			}

			// Child: redirect logs, claim the PID file, run the loop.
			logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				log.SetOutput(logFile)
				defer logFile.Close()
			}

			if err := dm.WritePID(); err != nil {
				return errors.Wrap(err, "failed to write PID file")
			}
			defer dm.RemovePID()

			return runWatcher(cmd.Context(), cfg)
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			dm := daemon.New(cfg.Daemon.PIDFile)

			running, pid, err := dm.IsRunning()
			if err != nil {
				return errors.Wrap(err, "failed to check watcher status")
			}
			if !running {
				fmt.Println("Watcher is not running")
				return nil
			}

			fmt.Printf("Stopping watcher (PID: %d)...\n", pid)
			if err := dm.Stop(); err != nil {
				return err
			}

			fmt.Println("Watcher stopped successfully")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show watcher status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			dm := daemon.New(cfg.Daemon.PIDFile)

			running, pid, err := dm.IsRunning()
			if err != nil {
				return errors.Wrap(err, "failed to check watcher status")
			}

			if !running {
				fmt.Println("Status: Not running")
				return nil
			}

			fmt.Printf("Status: Running (PID: %d)\n", pid)
			fmt.Printf("Target: %s\n", cfg.Target.Title)
			fmt.Printf("Tick Interval: %v\n", cfg.Watch.Interval)

			if status, err := fetchStatus(cfg); err == nil {
				fmt.Printf("\n%s", status)
			}
			return nil
		},
	}
}

// daemonize re-executes this binary detached from the terminal, with an env
// marker so the child knows to run the loop instead of forking again.
func daemonize(cfg *config.Config) error {
	env := append(os.Environ(), daemonChildEnv+"=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to /dev/null
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		return errors.Wrap(err, "failed to start background process")
	}

	fmt.Printf("Watcher started (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
	return nil
}
