package main

import (
	"github.com/lixenwraith/applog"
	"github.com/lixenwraith/applog/compat"
	"github.com/lixenwraith/applog/lifecycle"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	logger *applog.Logger
}

func (es *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	es.logger.Notification("echo server started")
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := applog.NewBuilder().
		AppName("gnet-echo").
		ShowMilliseconds(true).
		Build()
	if err != nil {
		panic(err)
	}

	notifier := lifecycle.New()
	notifier.OnShutdown(logger.HandleLifecycle)
	defer notifier.Quit()
	defer notifier.Recover()

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{logger: logger},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
