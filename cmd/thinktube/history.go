package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/thinktube/internal/archive"
	"github.com/Zuo-Peng/thinktube/internal/config"
	"github.com/Zuo-Peng/thinktube/internal/render"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/Zuo-Peng/thinktube/internal/youtube"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func historyCmd() *cobra.Command {
	var query, role, since, format string
	var limit int

	cmd := &cobra.Command{
		Use:   "history [video-id|url]",
		Short: "Browse and search archived chats",
		Long: `Without arguments, list archived videos. With a video id or URL, print
that video's transcript. With --search, run a full-text search over all
archived messages. Archiving is enabled with archive = true in the config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if _, err := os.Stat(cfg.ArchivePath); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no archive at %s (set archive = true in the config)", cfg.ArchivePath)
			}

			db, err := archive.Open(cfg.ArchivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer db.Close()

			videoID := ""
			if len(args) == 1 {
				videoID = args[0]
				if id, ok := youtube.ParseVideoID(args[0]); ok {
					videoID = id
				}
			}

			tty := term.IsTerminal(int(os.Stdout.Fd()))
			out := os.Stdout

			switch {
			case query != "":
				results, err := db.Search(archive.SearchOptions{
					Query:   query,
					VideoID: videoID,
					Role:    role,
					Since:   since,
					Limit:   limit,
				})
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if format != "text" {
					return encode(out, format, results)
				}
				if len(results) == 0 {
					fmt.Fprintln(os.Stderr, "No results found.")
					return nil
				}
				for _, r := range results {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.VideoID, r.CreatedAt, r.Role, render.Snippet(r.Snippet, tty))
				}
				return nil

			case videoID != "":
				rows, err := db.Messages(videoID)
				if err != nil {
					return fmt.Errorf("messages: %w", err)
				}
				if len(rows) == 0 {
					return fmt.Errorf("no archived messages for %s", videoID)
				}
				if role != "" {
					kept := rows[:0]
					for _, r := range rows {
						if r.Role == role {
							kept = append(kept, r)
						}
					}
					rows = kept
				}
				if format != "text" {
					return encode(out, format, rows)
				}
				msgs := make([]session.Message, 0, len(rows))
				for _, r := range rows {
					msgs = append(msgs, r.Message())
				}
				opts := render.Options{Color: tty, Header: youtube.WatchURL(videoID)}
				if tty {
					if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
						opts.Width = w
					}
				}
				fmt.Fprint(out, render.Transcript(msgs, opts))
				return nil

			default:
				videos, err := db.ListVideos(limit)
				if err != nil {
					return fmt.Errorf("list videos: %w", err)
				}
				if format != "text" {
					return encode(out, format, videos)
				}
				for _, v := range videos {
					fmt.Fprintf(out, "%s\t%s\t%d messages\t%s\n", v.VideoID, v.LastSeen, v.MessageCount, v.RawURL)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&query, "search", "", "Full-text search query")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (user/assistant)")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")

	return cmd
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
