package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/applog"
	"github.com/lixenwraith/applog/compat"
	"github.com/lixenwraith/applog/lifecycle"
	"github.com/valyala/fasthttp"
)

func main() {
	logger := applog.NewLogger()
	err := logger.ApplyOverride(
		"app_name=fasthttp-demo",
		"max_flush_interval_messages=50",
		"show_milliseconds=true",
	)
	if err != nil {
		panic(err)
	}

	notifier := lifecycle.New()
	notifier.OnShutdown(logger.HandleLifecycle)
	defer notifier.Recover()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultSeverity(applog.SeverityNotification),
		compat.WithSeverityDetector(customSeverityDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:         "MyServer",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	notifier.OnShutdown(func(lifecycle.Event) {
		_ = server.Shutdown()
	})
	go notifier.Watch(context.Background())

	fmt.Println("Starting server on :8080, log file:", logger.GetPath())
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Error("server stopped:", err)
	}
	notifier.Quit()
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customSeverityDetector(msg string) (applog.Severity, bool) {
	if strings.Contains(msg, "timeout") {
		return applog.SeverityWarning, true
	}
	return compat.DetectSeverity(msg)
}
