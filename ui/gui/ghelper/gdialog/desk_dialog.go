package gdialog

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
)

var ErrCancelled = dialog.ErrCancelled

var ErrEmptyFile = errors.New("file has no FEN line")

type Result struct {
	Path string
	Name string
	Data []byte
}

func OpenFile(title string) (Result, error) {
	path, err := dialog.File().Title(title).Filter("FEN", "fen", "txt").Filter("All files", "*").Load()
	if err != nil {
		return Result{}, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Path: path,
		Name: filepath.Base(path),
		Data: b,
	}, nil
}

// FirstLine returns the first non-blank line of the file, trimmed.
func (r Result) FirstLine() (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(r.Data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", ErrEmptyFile
}

// ShowError blocks until the user closes the message box.
func ShowError(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}
