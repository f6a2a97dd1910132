package main

import (
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerroom/cmd/pokerroom/shared"
	"github.com/lox/pokerroom/internal/server"
	"github.com/lox/pokerroom/internal/session"
)

// ServeCmd runs the WebSocket game server
type ServeCmd struct {
	Config string `kong:"default='pokerroom.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen host override'"`
	Port   int    `kong:"help='Listen port override'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)

	registry := session.NewRegistry(nil)
	srv := server.NewServer(cfg, registry, logger)

	logger.Info("Starting poker room server",
		"addr", cfg.ListenAddress(),
		"cashOutPolicy", cfg.Game.CashOutPolicy)

	ctx := shared.SetupSignalHandler(logger)

	var g errgroup.Group
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		return srv.Stop()
	})
	return g.Wait()
}
