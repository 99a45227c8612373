package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/proxyserver"
)

// ServeCommand returns the serve command.
// Serve runs the sidecar proxy in front of the host server, rerouting view
// requests for unsupported formats to the preview endpoint.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the rerouting proxy in front of the host server",
		Flags: []cli.Flag{
			ConfigFlag,
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Listen address for the proxy",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Host server base URL to proxy to",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Flags override config values
	if listen := c.String("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if target := c.String("target"); target != "" {
		cfg.Server.BaseURL = target
	}

	logger := log.NewLogger("serve")
	collector := metrics.NewCollector()

	srv, err := proxyserver.New(proxyserver.Config{
		ListenAddr: cfg.Server.Listen,
		Target:     cfg.Server.BaseURL,
	}, cfg.Rewriter(), logger, collector)
	if err != nil {
		return fmt.Errorf("failed to create proxy server: %w", err)
	}

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return srv.ListenAndServe(ctx)
}
