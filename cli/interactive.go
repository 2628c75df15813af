package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"weatherlookup/manager"
)

const sessionHelp = `Type a city to search (suggestions appear after a short pause).
  <enter>, :search   get the weather for the typed text
  :1 .. :5           pick a suggestion
  :unit              switch between °C and °F
  :new               start a new search
  :quit              leave
`

func newInteractiveCommand(newManager Factory, s *settings) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Search with live suggestions, one input line at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := s.open(newManager)
			defer m.Close()

			sess := &session{manager: m, out: cmd.OutOrStdout(), settings: s}
			return sess.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type session struct {
	manager  *manager.Manager
	settings *settings

	mu  sync.Mutex
	out io.Writer
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	s.print(sessionHelp)
	s.manager.Subscribe(s.redraw)
	s.redraw(s.manager.State())

	lines := bufio.NewScanner(in)
	for lines.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if quit := s.handle(ctx, lines.Text()); quit {
			return nil
		}
	}

	return lines.Err()
}

// handle applies one input line and reports whether the session is over.
func (s *session) handle(ctx context.Context, line string) bool {
	command, isCommand := strings.CutPrefix(strings.TrimSpace(line), ":")
	if !isCommand {
		if strings.TrimSpace(line) == "" {
			_ = s.manager.Search(ctx)
			return false
		}
		s.manager.SetQuery(line)
		return false
	}

	switch command {
	case "q", "quit", "exit":
		return true
	case "s", "search":
		_ = s.manager.Search(ctx)
	case "u", "unit":
		s.manager.ToggleUnit()
	case "n", "new":
		s.manager.Reset()
	case "h", "help":
		s.print(sessionHelp)
	default:
		n, err := strconv.Atoi(command)
		if err != nil {
			s.print(fmt.Sprintf("unknown command :%s\n", command))
			return false
		}
		if err = s.manager.Select(ctx, n-1); errors.Is(err, manager.ErrNoSuggestion) {
			s.print(fmt.Sprintf("no suggestion %d\n", n))
		}
	}

	return false
}

func (s *session) print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, text)
}

func (s *session) redraw(state manager.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = io.WriteString(s.out, "\n")
	if err := s.settings.render(s.out, state); err != nil {
		slog.Debug("render failed", "error", err)
	}
}
