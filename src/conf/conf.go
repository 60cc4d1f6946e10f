package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultFile string = "fenview.json"

type Config struct {
	Theme        string `json:"theme" yaml:"theme"`                 // light/dark
	Lang         string `json:"language" yaml:"language"`           // en/es
	SquareSize   int    `json:"square_size" yaml:"square_size"`     // pixels per square
	FontPath     string `json:"font_path" yaml:"font_path"`         // ttf with chess glyphs, optional
	WindowW      int    `json:"window_w" yaml:"window_w"`           //
	WindowH      int    `json:"window_h" yaml:"window_h"`           //
	Addr         string `json:"addr" yaml:"addr"`                   // web ui listen address
	HistoryDir   string `json:"history_dir" yaml:"history_dir"`     // empty = keep history in memory
	HistoryLimit int    `json:"history_limit" yaml:"history_limit"` //
	LogLevel     string `json:"log_level" yaml:"log_level"`         // debug/info/warn/error
	LogFile      string `json:"log_file" yaml:"log_file"`           //
	Debug        bool   `json:"debug" yaml:"debug"`                 // true/false

	path string
}

func DefaultConfig() Config {
	return Config{
		Theme:        "light",
		Lang:         "en",
		SquareSize:   60,
		FontPath:     "",
		WindowW:      760,
		WindowH:      760,
		Addr:         ":8080",
		HistoryDir:   "",
		HistoryLimit: 100,
		LogLevel:     "info",
		LogFile:      "fenview.log",
		Debug:        false,
	}
}

// Load reads the config at path. A missing file gives the defaults bound to
// that path, Exists reports false until Save writes them.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		def := DefaultConfig()
		def.path = path
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", path, err)
	}
	correctableConfig(&c)
	c.path = path

	return &c, nil
}

func (c *Config) Path() string {
	return c.path
}

// Exists reports whether the config file is on disk.
func (c *Config) Exists() bool {
	file := c.path
	if file == "" {
		file = DefaultFile
	}
	_, err := os.Stat(file)
	return err == nil
}

func (c *Config) Save() error {
	file := c.path
	if file == "" {
		file = DefaultFile
	}
	var (
		data []byte
		err  error
	)
	if isYAML(file) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "    ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func correctableConfig(c *Config) {
	def := DefaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.Lang != "en" && c.Lang != "es" {
		c.Lang = def.Lang
	}
	if c.SquareSize < 24 {
		c.SquareSize = def.SquareSize
	}
	if c.WindowH < 480 || c.WindowW < 480 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}
