package main

import (
	"fmt"

	"github.com/Zuo-Peng/thinktube/internal/archive"
	"github.com/Zuo-Peng/thinktube/internal/backend"
	"github.com/Zuo-Peng/thinktube/internal/config"
	"github.com/Zuo-Peng/thinktube/internal/logger"
	"github.com/Zuo-Peng/thinktube/internal/session"
)

// app holds everything a session-driving command needs.
type app struct {
	cfg     *config.Config
	client  *backend.Client
	ctl     *session.Controller
	archive *archive.DB

	closeLog func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &app{
		cfg:      cfg,
		closeLog: logger.Init(logger.Config{File: cfg.LogFile, Level: cfg.LogLevel}),
	}
	a.client = backend.NewClient(cfg.APIURL, backend.Options{
		Timeout:     timeout,
		SendVideoID: cfg.SendVideoID,
	})

	var opts []session.Option
	if cfg.Archive {
		db, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			a.closeLog()
			return nil, fmt.Errorf("open archive: %w", err)
		}
		a.archive = db
		opts = append(opts, session.WithRecorder(db))
	}
	a.ctl = session.New(a.client, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.archive != nil {
		a.archive.Close()
	}
	a.closeLog()
}
