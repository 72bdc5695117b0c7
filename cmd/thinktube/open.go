package main

import (
	"github.com/Zuo-Peng/thinktube/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open the video's watch page in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return open.Video(args[0])
		},
	}
}
