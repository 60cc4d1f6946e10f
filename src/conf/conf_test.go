package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultConfig()
	if c.Theme != def.Theme || c.SquareSize != def.SquareSize || c.Addr != def.Addr {
		t.Errorf("expected defaults, got %+v", c)
	}
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
	if c.Exists() {
		t.Errorf("Exists() = true before Save")
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !c.Exists() {
		t.Errorf("Exists() = false after Save")
	}
}

func TestLoadJSONCorrectsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fenview.json")
	data := `{"theme":"neon","language":"es","square_size":8,"window_w":100,"window_h":100,"history_limit":5}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultConfig()
	if c.Theme != "light" {
		t.Errorf("Theme = %q, want light", c.Theme)
	}
	if c.Lang != "es" {
		t.Errorf("Lang = %q, want es", c.Lang)
	}
	if c.SquareSize != def.SquareSize {
		t.Errorf("SquareSize = %d, want %d", c.SquareSize, def.SquareSize)
	}
	if c.WindowW != def.WindowW || c.WindowH != def.WindowH {
		t.Errorf("window = %dx%d", c.WindowW, c.WindowH)
	}
	if c.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", c.HistoryLimit)
	}
	if c.LogLevel != def.LogLevel {
		t.Errorf("LogLevel = %q", c.LogLevel)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fenview.yaml")
	data := "theme: dark\nsquare_size: 48\nhistory_dir: /tmp/fenview\nfont_path: /usr/share/fonts/DejaVuSans.ttf\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Theme != "dark" || c.SquareSize != 48 || c.HistoryDir != "/tmp/fenview" {
		t.Errorf("unexpected config %+v", c)
	}
	if c.FontPath != "/usr/share/fonts/DejaVuSans.ttf" {
		t.Errorf("FontPath = %q", c.FontPath)
	}
	// keys not present keep defaults
	if c.Lang != "en" {
		t.Errorf("Lang = %q, want en", c.Lang)
	}
}

func TestLoadBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fenview.json")
	if err := os.WriteFile(path, []byte("{theme"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load of broken file should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"fenview.json", "fenview.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			c, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			c.Theme = "dark"
			c.SquareSize = 40
			if err := c.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}

			again, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if again.Theme != "dark" || again.SquareSize != 40 {
				t.Errorf("round trip lost values: %+v", again)
			}
		})
	}
}
