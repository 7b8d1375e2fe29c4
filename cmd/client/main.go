package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"pokertable-client/internal/config"
	"pokertable-client/internal/console"
	"pokertable-client/internal/transport"
	"pokertable-client/internal/viewserver"
	"pokertable-client/pkg/render"
	"pokertable-client/pkg/session"
)

// Version is the client version
var Version = "v0.0.0-dev"

var presentation = flag.String("presentation", "", "overrides the presentation (table or list)")
var statusAddr = flag.String("status-addr", "", "overrides the listen address of the view server")

func main() {
	flag.Parse()
	cfg := config.Instance()
	if *presentation != "" {
		cfg.Presentation = *presentation
	}

	if *statusAddr != "" {
		cfg.StatusAddr = *statusAddr
	}

	if logFile := setupLogger(cfg); logFile != nil {
		defer logFile.Close()
	}

	// fail fast
	policy, err := session.ParsePolicy(cfg.ContinuePolicy)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	client, err := transport.New(cfg.BaseURL, transport.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	terminal, err := render.NewTerminal(os.Stdout, cfg.Presentation)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	s := session.New(client, terminal, cfg.StartRequest(), session.Options{
		PollInterval:      cfg.PollInterval,
		ContinuePolicy:    policy,
		AutoContinueDelay: cfg.AutoContinueDelay,
	})
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		logrus.WithError(err).WithField("baseUrl", cfg.BaseURL).Fatal("could not start the game")
	}

	if cfg.StatusAddr != "" {
		m := viewserver.NewMux(Version, s)
		go func() {
			if err := viewserver.Serve(ctx, cfg.StatusAddr, m.Handler(accessLog(cfg))); err != nil {
				logrus.WithError(err).Error("view server stopped")
			}
		}()
	}

	if err := console.Run(ctx, os.Stdin, os.Stdout, s); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("could not read commands")
	}

	logrus.Info("leaving the table")
}

func accessLog(cfg config.Config) io.Writer {
	if cfg.Log.DisableAccessLogs {
		return nil
	}

	return logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
}

// setupLogger returns the log file if logs are written to one
func setupLogger(cfg config.Config) *os.File {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Log.File == "" {
		return nil
	}

	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.WithError(err).Fatal("could not open log file")
	}

	// keep the log away from the table
	logrus.SetOutput(file)
	return file
}
