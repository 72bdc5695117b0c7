package main

import (
	"github.com/Zuo-Peng/thinktube/internal/tui"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [url]",
		Short: "Interactive chat about a YouTube video",
		Long: `Open the interactive chat. Paste a YouTube URL, load it, then ask
questions or use the F1-F4 quick questions. A URL given on the command line
is loaded right away.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var url string
			if len(args) == 1 {
				url = args[0]
			}
			return tui.Run(a.ctl, url)
		},
	}
}
