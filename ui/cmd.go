package ui

import (
	"context"
	"errors"
	"fenview/src"
	"fenview/src/conf"
	"fenview/src/logic/convert/convfen"
	"fenview/src/logic/history"
	"fenview/src/logx"
	clic "fenview/ui/cli"
	"fenview/ui/gui"
	"fenview/ui/gui/tools/lang"
	"fenview/ui/render"
	"fenview/ui/web"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	exitInvalid = 1
	exitIO      = 2
)

func GetLogger(w io.Writer, c *cli.Command, cfg *conf.Config) *logx.Logx {
	level := cfg.LogLevel
	if c.IsSet("level") {
		level = c.String("level")
	}
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(level),
		c.Bool("debug") || cfg.Debug,
		c.Bool("console"),
	)
	l.InitLogger(w)
	return l
}

// app is everything a command needs, built from the global flags.
type app struct {
	cfg     *conf.Config
	logger  *logx.Logx
	logFile *os.File
	store   history.Store
	session *src.Session
	lang    *lang.GUILangWorker
}

func newApp(c *cli.Command) (*app, error) {
	cfg, err := conf.Load(c.String("config"))
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error load config: %v", err), exitIO)
	}
	logfile := cfg.LogFile
	if c.IsSet("log") {
		logfile = c.String("log")
	}
	if logfile == "" {
		logfile = conf.DefaultConfig().LogFile
	}
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error open logfile: %v", err), exitIO)
	}
	a := &app{cfg: cfg, logFile: file, logger: GetLogger(file, c, cfg)}
	SaveDefaultConfig(cfg, a.logger)

	if cfg.HistoryDir != "" {
		a.store, err = history.OpenBadgerStore(cfg.HistoryDir, cfg.HistoryLimit)
		if err != nil {
			a.Close()
			return nil, cli.Exit(fmt.Sprintf("error open history: %v", err), exitIO)
		}
	} else {
		a.store = history.NewMemoryStore(cfg.HistoryLimit)
	}
	a.session = src.NewSession(a.logger, a.store)

	a.lang, err = lang.NewGUILangWorker(lang.LangTypeFromString(cfg.Lang))
	if err != nil {
		a.Close()
		return nil, cli.Exit(fmt.Sprintf("error load language: %v", err), exitIO)
	}
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Errorf("error close history: %v", err)
		}
	}
	_ = a.logger.Sync()
	a.logFile.Close()
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		SquareSize:  a.cfg.SquareSize,
		Theme:       render.ThemeFromString(a.cfg.Theme),
		Coordinates: true,
		FontPath:    a.cfg.FontPath,
	}
}

// SaveDefaultConfig writes cfg when its file does not exist yet, so the
// defaults can be edited. A failed write is only logged.
func SaveDefaultConfig(cfg *conf.Config, l logx.Logger) {
	if cfg.Exists() {
		return
	}
	if err := cfg.Save(); err != nil {
		l.Warnf("error save default config %s: %v", cfg.Path(), err)
		return
	}
	l.Infow("default config created", "path", cfg.Path())
}

// withApp runs fn with a ready app and releases it afterwards.
func withApp(fn func(ctx context.Context, c *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		a, err := newApp(c)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, c, a)
	}
}

// RunCheck validates every FEN and reports each one. It fails if any is
// invalid.
func RunCheck(w io.Writer, s *src.Session, lw *lang.GUILangWorker, fens []string) error {
	invalid := 0
	for _, fen := range fens {
		pos, err := s.Validate(fen)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "%s: %s: %v\n", lw.T("status.error"), lw.T("dialog.error.body"), err)
			continue
		}
		fmt.Fprintf(w, "OK %s\n", s.FEN())
		fmt.Fprintln(w, clic.FormatInfo(*pos, lw))
	}
	if invalid > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d FEN strings invalid", invalid, len(fens)), exitInvalid)
	}
	return nil
}

// RenderFormat picks png or svg from the flag or the output extension.
func RenderFormat(format, out string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch format {
	case "png", "svg":
		return format, nil
	case "":
		return "png", nil
	default:
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func fenArg(c *cli.Command) (string, error) {
	if c.Args().Len() == 0 {
		return "", cli.Exit("FEN argument required", exitIO)
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func RunFenView() error {
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level (debug, info, warn, error)",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	conff := &cli.StringFlag{
		Name:  "config",
		Value: conf.DefaultFile,
		Usage: "path to config file (.json, .yaml)",
	}
	logf := &cli.StringFlag{
		Name:  "log",
		Usage: "path to log file",
	}

	runGUI := withApp(func(ctx context.Context, c *cli.Command, a *app) error {
		g, err := gui.NewGUI(a.session, a.cfg, a.logger)
		if err != nil {
			return cli.Exit(fmt.Sprintf("error GUI: %v", err), exitIO)
		}
		if err := g.Run(); err != nil {
			return cli.Exit(fmt.Sprintf("error GUI: %v", err), exitIO)
		}
		return nil
	})

	return (&cli.Command{
		Name:  "fenview",
		Usage: "FEN validator and chess board viewer",
		Flags: []cli.Flag{conff, df, lf, cf, logf},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "validate FEN strings",
				ArgsUsage: "FEN...",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					if c.Args().Len() == 0 {
						return cli.Exit("FEN argument required", exitIO)
					}
					return RunCheck(os.Stdout, a.session, a.lang, c.Args().Slice())
				}),
			},
			{
				Name:      "show",
				Usage:     "draw the board of a FEN in the terminal",
				ArgsUsage: "FEN",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					fen, err := fenArg(c)
					if err != nil {
						return err
					}
					pos, err := a.session.Validate(fen)
					if err != nil {
						return cli.Exit(fmt.Sprintf("%s: %v", a.lang.T("dialog.error.body"), err), exitInvalid)
					}
					draw := clic.PrintPlainBoard
					if isTerminal(os.Stdout) {
						clic.EnableANSI()
						draw = clic.PrintBoard
					}
					draw(os.Stdout, pos.Board)
					fmt.Println(clic.FormatInfo(*pos, a.lang))
					return nil
				}),
			},
			{
				Name:      "render",
				Usage:     "write the board of a FEN as PNG or SVG",
				ArgsUsage: "FEN",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "png or svg (default from extension)"},
					&cli.IntFlag{Name: "size", Usage: "square size in pixels"},
					&cli.StringFlag{Name: "theme", Usage: "light or dark"},
					&cli.BoolFlag{Name: "no-coords", Usage: "hide file and rank labels"},
				},
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					fen, err := fenArg(c)
					if err != nil {
						return err
					}
					format, err := RenderFormat(c.String("format"), c.String("out"))
					if err != nil {
						return cli.Exit(err.Error(), exitIO)
					}
					pos, err := a.session.Validate(fen)
					if err != nil {
						return cli.Exit(fmt.Sprintf("%s: %v", a.lang.T("dialog.error.body"), err), exitInvalid)
					}

					opts := a.renderOptions()
					if size := int(c.Int("size")); size > 0 {
						opts.SquareSize = size
					}
					if c.IsSet("theme") {
						opts.Theme = render.ThemeFromString(c.String("theme"))
					}
					opts.Coordinates = !c.Bool("no-coords")

					out, err := os.Create(c.String("out"))
					if err != nil {
						return cli.Exit(fmt.Sprintf("error create output: %v", err), exitIO)
					}
					if format == "svg" {
						err = render.RenderSVG(out, pos.Board, opts)
					} else {
						err = render.RenderPNG(out, pos.Board, opts)
					}
					if cerr := out.Close(); err == nil {
						err = cerr
					}
					if err != nil {
						return cli.Exit(fmt.Sprintf("error render: %v", err), exitIO)
					}
					a.logger.Infow("board rendered", "out", c.String("out"), "format", format)
					return nil
				}),
			},
			{
				Name:    "repl",
				Aliases: []string{"cli"},
				Usage:   "interactive terminal validator",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					draw := clic.PrintPlainBoard
					if isTerminal(os.Stdout) {
						clic.EnableANSI()
						draw = clic.PrintBoard
					}
					if err := clic.NewCLI(a.session, a.lang, draw).Run(ctx); err != nil {
						return cli.Exit(fmt.Sprintf("error fenview: %v", err), exitIO)
					}
					return nil
				}),
			},
			{
				Name:   "gui",
				Usage:  "window validator",
				Action: runGUI,
			},
			{
				Name:  "serve",
				Usage: "web validator",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address"},
				},
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					addr := a.cfg.Addr
					if c.IsSet("addr") {
						addr = c.String("addr")
					}
					srv, err := web.NewServer(a.session, a.renderOptions(), a.logger)
					if err != nil {
						return cli.Exit(err.Error(), exitIO)
					}
					defer srv.Close()

					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()
					fmt.Printf("listening on %s\n", addr)
					if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
						return cli.Exit(fmt.Sprintf("error serve: %v", err), exitIO)
					}
					return nil
				}),
			},
			{
				Name:  "history",
				Usage: "print recent validation attempts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "number of entries"},
				},
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					return RunHistory(ctx, os.Stdout, a.session, a.cfg.HistoryDir != "", int(c.Int("limit")))
				}),
			},
		},
		Action: runGUI,
	}).Run(context.Background(), os.Args)
}

const memoryHistoryHint = "history is kept in memory for this run only, set history_dir in the config to keep it"

// RunHistory prints the last n attempts. Without a history directory every
// run starts empty, so it says so.
func RunHistory(ctx context.Context, w io.Writer, s *src.Session, persistent bool, n int) error {
	if !persistent {
		fmt.Fprintln(w, memoryHistoryHint)
	}
	entries, err := s.History(ctx, n)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error read history: %v", err), exitIO)
	}
	PrintHistory(w, entries)
	return nil
}

func PrintHistory(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		mark := "ok "
		if !e.Valid {
			mark = "ERR"
		}
		fmt.Fprintf(w, "%s %s %s", e.Time.Local().Format("2006-01-02 15:04:05"), mark, e.FEN)
		if e.Kind != convfen.KindUnknown {
			fmt.Fprintf(w, "  (%s: %s)", e.Kind, e.Message)
		}
		fmt.Fprintln(w)
	}
}
