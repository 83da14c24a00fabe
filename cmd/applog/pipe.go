package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lixenwraith/applog"
	"github.com/lixenwraith/applog/lifecycle"
	"github.com/lixenwraith/applog/metrics"
	"github.com/spf13/cobra"
)

func newPipeCmd(opts *options) *cobra.Command {
	var (
		severityLabel string
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Write each stdin line as an entry until EOF or a termination signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			severity, err := applog.ParseSeverity(severityLabel)
			if err != nil {
				return err
			}

			logger, err := opts.openLogger(cmd)
			if err != nil {
				return err
			}

			notifier := lifecycle.New()
			notifier.OnShutdown(logger.HandleLifecycle)
			defer notifier.Recover()

			if metricsAddr != "" {
				srv, err := serveMetrics(logger, metricsAddr)
				if err != nil {
					_ = logger.Shutdown()
					return err
				}
				notifier.OnShutdown(func(lifecycle.Event) {
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				})
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go notifier.Watch(ctx)

			go func() {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					select {
					case <-notifier.Done():
						return
					default:
					}
					_ = logger.Log(severity, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					logger.Error("stdin read failed:", err)
				}
				notifier.Quit()
			}()

			<-notifier.Done()
			stats := logger.Stats()
			fmt.Fprintf(cmd.ErrOrStderr(), "applog: %d entries, %d flushes, %d write errors\n",
				stats.Entries, stats.Flushes, stats.WriteErrors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&severityLabel, "severity", "s", "notification", "notification, warning or error")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9102)")
	return cmd
}

// serveMetrics starts an HTTP server exposing logger metrics at /metrics
func serveMetrics(logger *applog.Logger, addr string) (*http.Server, error) {
	handler, err := metrics.NewHandler(metrics.NewCollector(logger, "applog"))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed:", err)
		}
	}()
	return srv, nil
}
