package cli

import (
	"bufio"
	"context"
	"fenview/src"
	"fenview/src/base"
	"fenview/src/logic/convert/convfen"
	"fenview/ui/gui/tools/lang"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const historyShown = 10

type CLIProcessing struct {
	session *src.Session
	lang    *lang.GUILangWorker
	draw    DrawFunc
	in      io.Reader
	out     io.Writer
}

func NewCLI(s *src.Session, lw *lang.GUILangWorker, draw DrawFunc) *CLIProcessing {
	return &CLIProcessing{session: s, lang: lw, draw: draw, in: os.Stdin, out: os.Stdout}
}

// WithIO replaces stdin/stdout.
func (c *CLIProcessing) WithIO(in io.Reader, out io.Writer) *CLIProcessing {
	c.in, c.out = in, out
	return c
}

func (c *CLIProcessing) interactive() bool {
	f, ok := c.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run reads one FEN or command per line until EOF or q.
func (c *CLIProcessing) Run(ctx context.Context) error {
	interactive := c.interactive()
	scanner := bufio.NewScanner(c.in)
	c.draw(c.out, c.session.Board())
	fmt.Fprintln(c.out, c.lang.T("repl.help"))
	c.prompt(interactive)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "q", "Q", "quit":
			return nil
		case "help":
			fmt.Fprintln(c.out, c.lang.T("repl.help"))
		case "clear":
			c.session.Clear()
			c.draw(c.out, c.session.Board())
			fmt.Fprintln(c.out, c.lang.T("status.cleared"))
		case "start":
			c.validate(base.FEN_START_POSITION)
		case "fen":
			if fen := c.session.FEN(); fen != "" {
				fmt.Fprintf(c.out, "FEN: %s\n", fen)
			} else {
				fmt.Fprintln(c.out, c.lang.T("status.waiting"))
			}
		case "history":
			c.printHistory(ctx)
		default:
			c.validate(line)
		}
		c.prompt(interactive)
	}
	return scanner.Err()
}

func (c *CLIProcessing) prompt(interactive bool) {
	if interactive {
		fmt.Fprint(c.out, "fen> ")
	}
}

func (c *CLIProcessing) validate(fen string) {
	pos, err := c.session.Validate(fen)
	if err != nil {
		fmt.Fprintf(c.out, "%s: %s: %v\n", c.lang.T("status.error"), c.lang.T("dialog.error.body"), err)
		return
	}
	c.draw(c.out, pos.Board)
	fmt.Fprintln(c.out, FormatInfo(*pos, c.lang))
	fmt.Fprintln(c.out, c.lang.T("status.valid"))
}

func (c *CLIProcessing) printHistory(ctx context.Context) {
	entries, err := c.session.History(ctx, historyShown)
	if err != nil {
		fmt.Fprintf(c.out, "error read history: %v\n", err)
		return
	}
	for _, e := range entries {
		mark := "ok "
		if !e.Valid {
			mark = "ERR"
		}
		fmt.Fprintf(c.out, "%s %s %s", e.Time.Local().Format("15:04:05"), mark, e.FEN)
		if e.Kind != convfen.KindUnknown {
			fmt.Fprintf(c.out, "  (%s)", e.Kind)
		}
		fmt.Fprintln(c.out)
	}
}
