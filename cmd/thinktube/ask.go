package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Zuo-Peng/thinktube/internal/render"
	"github.com/Zuo-Peng/thinktube/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

func askCmd() *cobra.Command {
	var qps float64

	cmd := &cobra.Command{
		Use:   "ask <url> [question...]",
		Short: "Load a video and ask questions without the TUI",
		Long: `Load a video, then ask the question given as arguments. With no
question arguments and stdin not a terminal, every non-empty stdin line is
asked in order:

  printf 'Who is the target audience?\nWhat topics are covered?\n' | thinktube ask <url>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := collectQuestions(args[1:], os.Stdin)
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				return errors.New("no question given")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			tty := term.IsTerminal(int(os.Stdout.Fd()))
			opts := render.Options{Color: tty}
			if tty {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					opts.Width = w
				}
			}

			if err := a.ctl.LoadVideo(ctx, args[0]); err != nil {
				return loadError(a.ctl, err)
			}
			v, _ := a.ctl.Video()
			opts.Header = v.ExtractedID
			fmt.Print(render.Transcript(a.ctl.Messages(), opts))
			opts.Header = ""

			limit := rate.Inf
			if qps > 0 {
				limit = rate.Limit(qps)
			}
			limiter := rate.NewLimiter(limit, 1)

			failed := 0
			for _, q := range questions {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				if _, err := a.ctl.AskQuestion(ctx, q); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					failed++
				}
				msgs := a.ctl.Messages()
				fmt.Println()
				fmt.Print(render.Transcript(msgs[len(msgs)-2:], opts))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d questions failed", failed, len(questions))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&qps, "qps", 1, "Max questions per second (0 = unlimited)")

	return cmd
}

// collectQuestions returns the argument question, or stdin lines when there
// are no arguments and stdin is piped.
func collectQuestions(args []string, stdin *os.File) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, nil
	}
	return readQuestions(stdin)
}

func readQuestions(r io.Reader) ([]string, error) {
	var questions []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}

// loadError turns a failed load into the message the banner shows.
func loadError(ctl *session.Controller, err error) error {
	if b, ok := ctl.Banner(); ok && b.Kind == session.BannerError {
		return errors.New(b.Text)
	}
	return err
}
