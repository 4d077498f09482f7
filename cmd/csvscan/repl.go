package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvscan/internal/sink"
	"github.com/shapestone/shape-csvscan/pkg/csv"
)

const (
	replPrompt         = "csv> "
	replContinuePrompt = "...> "
)

func newReplCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Type CSV lines and see the records they scan to",
		Long: `repl scans what you type. A quoted field may span several lines;
the prompt changes to "...>" until the closing quote arrives.
Type .quit or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, !noColor)
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func runRepl(cmd *cobra.Command, useColor bool) error {
	homeDir, _ := os.UserHomeDir()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     filepath.Join(homeDir, ".csvscan_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	s, err := newSession(rl.Stdout(), useColor)
	if err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if !s.pending() && len(line) == 0 {
				break
			}
			s.reset()
			rl.SetPrompt(replPrompt)
			continue
		} else if err == io.EOF {
			break
		}

		if !s.pending() && strings.TrimSpace(line) == ".quit" {
			break
		}

		if err := s.feed(line); err != nil {
			color.New(color.FgRed).Fprintf(rl.Stderr(), "%v\n", err)
		}
		if s.pending() {
			rl.SetPrompt(replContinuePrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
	return nil
}

// session turns typed lines into records. Lines are held back while they
// end inside a quoted field.
type session struct {
	lines []string
	out   sink.Sink
}

func newSession(w io.Writer, useColor bool) (*session, error) {
	out, err := sink.New("text", w, sink.WithColor(useColor))
	if err != nil {
		return nil, err
	}
	return &session{out: out}, nil
}

// feed adds one typed line and prints any records it completes.
func (s *session) feed(line string) error {
	if !s.pending() && line == "" {
		return nil
	}
	s.lines = append(s.lines, line)

	records, err := csv.ReadAll(strings.NewReader(strings.Join(s.lines, "\n")))
	if errors.Is(err, csv.ErrUnterminatedQuote) {
		return nil
	}
	s.reset()
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := s.out.Write(record); err != nil {
			return err
		}
	}
	return s.out.Flush()
}

func (s *session) pending() bool {
	return len(s.lines) > 0
}

func (s *session) reset() {
	s.lines = s.lines[:0]
}
