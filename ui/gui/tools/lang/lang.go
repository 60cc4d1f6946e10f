package lang

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed assets/*.json
var dictionaries embed.FS

type LangType int

const (
	EN LangType = iota
	ES
)

func LangTypeFromString(s string) LangType {
	if s == "es" {
		return ES
	}
	return EN
}

type GUILangWorker struct {
	lang LangType
	dict map[string]string
}

// create object LangWorker and set lang
func NewGUILangWorker(l LangType) (*GUILangWorker, error) {
	lw := &GUILangWorker{dict: make(map[string]string)}
	if err := lw.SetLang(l); err != nil {
		return nil, err
	}
	return lw, nil
}

func (lw *GUILangWorker) GetLang() LangType {
	return lw.lang
}

func (lw *GUILangWorker) SetLang(l LangType) error {
	data, err := dictionaries.ReadFile("assets/" + langTypeToJsonName(l))
	if err != nil {
		return err
	}
	dict := make(map[string]string)
	if err := json.Unmarshal(data, &dict); err != nil {
		return fmt.Errorf("error decode dictionary: %w", err)
	}
	lw.lang = l
	lw.dict = dict
	return nil
}

func (lw *GUILangWorker) T(key string) string {
	if v, ok := lw.dict[key]; ok {
		return v
	}
	return key // if key is not found
}

func langTypeToJsonName(l LangType) string {
	switch l {
	case ES:
		return "es.json"
	default:
		return "en.json"
	}
}
