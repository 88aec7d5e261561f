package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bosswatch/internal/config"
	"bosswatch/internal/notify"
	"bosswatch/internal/watch"
	"bosswatch/internal/web"
	"bosswatch/pkg/screen"
)

func newRunCmd() *cobra.Command {
	var (
		verbose  bool
		quiet    bool
		interval int
		debounce int
		title    string
		serve    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the game window in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()

			if title != "" {
				cfg.Target.Title = title
			}
			if cmd.Flags().Changed("interval") {
				if err := cfg.SetInterval(time.Duration(interval) * time.Second); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("debounce") {
				cfg.Watch.Debounce = debounce
			}
			if serve {
				cfg.Web.Enabled = true
			}
			if verbose {
				cfg.Log.Mode = config.LogVerbose
			}
			if quiet {
				cfg.Log.Mode = config.LogQuiet
			}

			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			return runWatcher(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every tick's status, even when unchanged")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log state transitions only")
	flags.IntVarP(&interval, "interval", "i", 5, "seconds between ticks")
	flags.IntVarP(&debounce, "debounce", "k", 2, "consecutive matching samples required to confirm a transition")
	flags.StringVarP(&title, "title", "t", "", `window title to watch (default "Mindustry")`)
	flags.BoolVar(&serve, "serve", false, "expose a read-only status endpoint over HTTP")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// runWatcher builds the pipeline and drives it until a signal or a terminal
// watch error. Shared by the foreground run command and the daemonized start.
func runWatcher(ctx context.Context, cfg *config.Config) error {
	locator, err := screen.NewLocator()
	if err != nil {
		return errors.Wrap(err, "window locator unavailable")
	}
	defer locator.Close()

	smp, err := screen.NewSampler()
	if err != nil {
		return errors.Wrap(err, "frame sampler unavailable")
	}
	defer smp.Close()

	svc := watch.NewService(cfg, locator, smp, notify.NewDesktop(cfg.Notify.Icon))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		svc.Stop()
	}()

	var statusServer *web.Server
	if cfg.Web.Enabled {
		statusServer = web.NewServer(cfg, svc)
		go func() {
			if err := statusServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Status server error: %v", err)
			}
		}()
	}

	log.Printf("%s", cfg.String())
	runErr := svc.Run(ctx)

	if statusServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down status server: %v", err)
		}
	}

	if runErr != nil && runErr != context.Canceled {
		return runErr
	}

	log.Println("Watcher stopped successfully")
	return nil
}

// fetchStatus queries a running watcher's status endpoint, for the status
// subcommand. Best effort: the serve surface may be disabled.
func fetchStatus(cfg *config.Config) (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s:%d/", cfg.Web.Host, cfg.Web.Port))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n]), nil
}
