// wsprobe connects to the Teneo websocket once and streams inbound
// messages to the console. Useful for checking credentials and watching
// the wire protocol without the full monitor.
//
// Usage: go run ./cmd/wsprobe -config config.json [-verbose]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/teneo-node/internal/auth"
	"github.com/rickgao/teneo-node/internal/config"
	"github.com/rickgao/teneo-node/internal/connection"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	connectURL, err := auth.ConnectURL(cfg.Node.WSURL, cfg.Node.AccessToken, cfg.Node.Version)
	if err != nil {
		logger.Error("failed to build connect url", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	client := connection.NewClient(connection.ClientConfig{
		URL:              connectURL,
		HandshakeTimeout: cfg.Connection.HandshakeTimeout,
		WriteTimeout:     cfg.Connection.WriteTimeout,
		BufferSize:       cfg.Connection.BufferSize,
	}, logger)

	dialCtx, dialCancel := context.WithTimeout(ctx, cfg.Connection.HandshakeTimeout)
	defer dialCancel()

	if err := client.Connect(dialCtx); err != nil {
		logger.Error("connect failed", "error", err, "token", auth.Redact(cfg.Node.AccessToken))
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("connected", "ws_url", cfg.Node.WSURL)

	// Keepalive so the server keeps talking to us.
	ping := []byte(`{"type":"PING"}`)
	ticker := time.NewTicker(cfg.Connection.PingInterval)
	defer ticker.Stop()

	count := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("probe finished", "messages", count)
			return

		case <-ticker.C:
			if err := client.Send(ping); err != nil {
				logger.Error("ping failed", "error", err)
				return
			}

		case err := <-client.Errors():
			logger.Error("connection error", "error", err)
			return

		case msg, ok := <-client.Messages():
			if !ok {
				return
			}
			count++

			if *verbose {
				fmt.Printf("[%s] %s\n", msg.ReceivedAt.Format(time.RFC3339Nano), msg.Data)
				continue
			}

			var envelope struct {
				Type        string `json:"type"`
				Message     string `json:"message"`
				PointsTotal int64  `json:"pointsTotal"`
				PointsToday int64  `json:"pointsToday"`
			}
			if err := json.Unmarshal(msg.Data, &envelope); err != nil {
				logger.Warn("unparseable message", "error", err, "raw", string(msg.Data))
				continue
			}

			switch {
			case envelope.Type == "PONG":
				logger.Debug("pong")
			case envelope.Message != "":
				logger.Info("server message",
					"message", envelope.Message,
					"points_total", envelope.PointsTotal,
					"points_today", envelope.PointsToday,
				)
			default:
				logger.Info("message", "type", envelope.Type)
			}
		}
	}
}
