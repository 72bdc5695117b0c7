package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Zuo-Peng/thinktube/internal/archive"
	"github.com/Zuo-Peng/thinktube/internal/backend"
	"github.com/Zuo-Peng/thinktube/internal/config"
	"github.com/spf13/cobra"
)

const pingTimeout = 30 * time.Second

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: show config, reach the backend, and show archive stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if cfg.Path != "" {
				fmt.Printf("  File: %s\n", cfg.Path)
			} else {
				fmt.Println("  File: (none, using defaults)")
			}
			timeout := cfg.RequestTimeout
			if timeout == "" {
				timeout = "none"
			}
			fmt.Printf("  API URL:       %s\n", cfg.APIURL)
			fmt.Printf("  Timeout:       %s\n", timeout)
			fmt.Printf("  Send video id: %v\n", cfg.SendVideoID)
			fmt.Printf("  Log file:      %s (%s)\n", cfg.LogFile, cfg.LogLevel)

			// the backend may be cold-starting, so give it a while
			fmt.Println("\n=== Backend ===")
			client := backend.NewClient(cfg.APIURL, backend.Options{})
			ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			defer cancel()
			start := time.Now()
			status, err := client.Ping(ctx)
			if err != nil {
				fmt.Printf("  Status: UNREACHABLE (%v)\n", err)
			} else {
				fmt.Printf("  Status: HTTP %d in %s\n", status, time.Since(start).Round(time.Millisecond))
			}

			fmt.Println("\n=== Archive ===")
			fmt.Printf("  Enabled: %v\n", cfg.Archive)
			fmt.Printf("  Path:    %s\n", cfg.ArchivePath)
			if _, err := os.Stat(cfg.ArchivePath); errors.Is(err, os.ErrNotExist) {
				fmt.Println("  Status:  NOT FOUND")
				return nil
			}

			db, err := archive.Open(cfg.ArchivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer db.Close()

			videoCount, err := db.VideoCount()
			if err != nil {
				return fmt.Errorf("count videos: %w", err)
			}
			msgCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Printf("  Videos:   %d\n", videoCount)
			fmt.Printf("  Messages: %d\n", msgCount)

			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else if ftsCount == msgCount {
				fmt.Println("  FTS5:     OK (synced)")
			} else {
				fmt.Printf("  FTS5:     MISMATCH (messages=%d, fts=%d)\n", msgCount, ftsCount)
			}

			if info, err := os.Stat(cfg.ArchivePath); err == nil {
				fmt.Printf("  Size:     %.1f MB\n", float64(info.Size())/1024/1024)
			}
			return nil
		},
	}
}
