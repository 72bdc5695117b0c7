package main

import (
	"fmt"

	"github.com/Zuo-Peng/thinktube/internal/youtube"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func idCmd() *cobra.Command {
	var copyID bool

	cmd := &cobra.Command{
		Use:   "id <url>",
		Short: "Print the video id and derived URLs for a YouTube URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := youtube.ParseVideoID(args[0])
			if !ok {
				return fmt.Errorf("not a youtube video url: %s", args[0])
			}

			fmt.Printf("id:        %s\n", id)
			fmt.Printf("watch:     %s\n", youtube.WatchURL(id))
			fmt.Printf("embed:     %s\n", youtube.EmbedURL(id))
			fmt.Printf("thumbnail: %s\n", youtube.ThumbnailURL(id, youtube.ThumbMaxRes))

			if copyID {
				if err := clipboard.WriteAll(id); err != nil {
					return fmt.Errorf("copy: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyID, "copy", false, "Copy the id to the clipboard")

	return cmd
}
