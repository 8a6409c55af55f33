package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/pterm/pterm"
)

// Prompter reads decisions and the play-again answer from line input.
// Anything it does not understand is asked again.
type Prompter struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line
}

type line struct {
	text string
	err  error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Decide implements game.Decider
func (p *Prompter) Decide(ctx context.Context, req game.DecisionRequest) (game.Move, error) {
	choices := make([]string, len(req.Options))
	for i, o := range req.Options {
		choices[i] = fmt.Sprintf("'%s' for %s", o.Key, o.Description)
	}
	fmt.Fprintln(p.out, pterm.Sprintf("%s, hand %d (%d). What do you want to do? %s",
		pterm.LightCyan(req.Owner), req.HandIndex+1, req.Value, strings.Join(choices, ", ")))

	for {
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if move, ok := game.ParseMove(line); ok && req.Allows(move) {
			fmt.Fprintln(p.out)
			return move, nil
		}
		fmt.Fprintln(p.out, pterm.Warning.Sprintf("Please pick one of: %s", strings.Join(choices, ", ")))
	}
}

// ContinueSession implements game.ContinuePrompter
func (p *Prompter) ContinueSession(ctx context.Context) (bool, error) {
	for {
		fmt.Fprintln(p.out, "Want to play again? (y/n)")
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			fmt.Fprintln(p.out)
			return true, nil
		case "n":
			fmt.Fprintln(p.out)
			return false, nil
		}
		fmt.Fprintln(p.out, pterm.Warning.Sprint("Please pick the 'y' or 'n' key."))
	}
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.once.Do(p.scan)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-p.lines:
		return l.text, l.err
	}
}

// scan reads input on its own goroutine so a blocked read never outlives a
// cancelled context. After the input ends every read reports the same error.
func (p *Prompter) scan() {
	p.lines = make(chan line)
	go func() {
		s := bufio.NewScanner(p.in)
		for s.Scan() {
			p.lines <- line{text: s.Text()}
		}
		err := io.EOF
		if s.Err() != nil {
			err = fmt.Errorf("read input: %w", s.Err())
		}
		for {
			p.lines <- line{err: err}
		}
	}()
}
