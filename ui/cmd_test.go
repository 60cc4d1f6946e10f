package ui

import (
	"bytes"
	"context"
	"fenview/src"
	"fenview/src/conf"
	"fenview/src/logic/convert/convfen"
	"fenview/src/logic/history"
	"fenview/src/logx"
	"fenview/ui/gui/tools/lang"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"
)

func newTestSession() *src.Session {
	return src.NewSession(logx.NewNop(), history.NewMemoryStore(10))
}

func TestRunCheck(t *testing.T) {
	lw, err := lang.NewGUILangWorker(lang.EN)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("all valid", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheck(&out, newTestSession(), lw, []string{
			"2r3k1/p3bqp1/Q2p3p/3Pp3/P3N3/8/5PPP/5RK1 b - - 1 27",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		})
		if err != nil {
			t.Fatalf("RunCheck() error = %v", err)
		}
		if got := strings.Count(out.String(), "OK "); got != 2 {
			t.Errorf("OK lines = %d, want 2\n%s", got, out.String())
		}
		if !strings.Contains(out.String(), "Turn: black") {
			t.Errorf("missing info line:\n%s", out.String())
		}
	})

	t.Run("one invalid", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheck(&out, newTestSession(), lw, []string{
			"8/8/8/8/8/8/8/8 w - - 0 1",
			"8/8/8/8/8/8/8/8 x - - 0 1",
		})
		ec, ok := err.(cli.ExitCoder)
		if !ok {
			t.Fatalf("RunCheck() error = %v, want ExitCoder", err)
		}
		if ec.ExitCode() != exitInvalid {
			t.Errorf("exit code = %d, want %d", ec.ExitCode(), exitInvalid)
		}
		if !strings.Contains(out.String(), "Invalid FEN: active color") {
			t.Errorf("missing error line:\n%s", out.String())
		}
	})
}

func TestRenderFormat(t *testing.T) {
	cases := []struct {
		format, out string
		want        string
		wantErr     bool
	}{
		{"", "board.png", "png", false},
		{"", "board.SVG", "svg", false},
		{"", "board", "png", false},
		{"svg", "board.png", "svg", false},
		{"", "board.gif", "", true},
		{"jpeg", "board.png", "", true},
	}
	for _, c := range cases {
		got, err := RenderFormat(c.format, c.out)
		if (err != nil) != c.wantErr {
			t.Errorf("RenderFormat(%q, %q) error = %v, wantErr %v", c.format, c.out, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("RenderFormat(%q, %q) = %q, want %q", c.format, c.out, got, c.want)
		}
	}
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	now := time.Now()
	PrintHistory(&out, []history.Entry{
		{Time: now, FEN: "bad", Valid: false, Kind: convfen.KindWrongFieldCount, Message: "must be exactly 6 fields, but there are 1"},
		{Time: now, FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Valid: true},
	})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "ERR bad  (wrong-field-count: must be exactly 6 fields") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ok  8/8/8/8/8/8/8/8 w - - 0 1") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRunHistory(t *testing.T) {
	s := newTestSession()
	_, _ = s.Validate("8/8/8/8/8/8/8/8 w - - 0 1")

	t.Run("memory", func(t *testing.T) {
		var out bytes.Buffer
		if err := RunHistory(context.Background(), &out, s, false, 5); err != nil {
			t.Fatalf("RunHistory() error = %v", err)
		}
		if !strings.HasPrefix(out.String(), memoryHistoryHint) {
			t.Errorf("missing memory hint:\n%s", out.String())
		}
		if !strings.Contains(out.String(), "ok  8/8/8/8/8/8/8/8 w - - 0 1") {
			t.Errorf("missing entry:\n%s", out.String())
		}
	})

	t.Run("persistent", func(t *testing.T) {
		var out bytes.Buffer
		if err := RunHistory(context.Background(), &out, s, true, 5); err != nil {
			t.Fatalf("RunHistory() error = %v", err)
		}
		if strings.Contains(out.String(), memoryHistoryHint) {
			t.Errorf("unexpected hint:\n%s", out.String())
		}
	})
}

func TestSaveDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fenview.yaml")
	cfg, err := conf.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	SaveDefaultConfig(cfg, logx.NewNop())
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	// an existing file is left alone
	if err := os.WriteFile(path, []byte("theme: dark\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = conf.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	SaveDefaultConfig(cfg, logx.NewNop())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "theme: dark\n" {
		t.Errorf("existing config rewritten: %q", data)
	}
}
