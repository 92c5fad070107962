// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package questions loads the interview question bank.
package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyBank = errors.New("question bank is empty")

// Fallback is used whenever the configured source cannot be loaded.
var Fallback = []string{
	"Hi, please tell us your full name.",
	"What is your work experience?",
	"What was your previous job role?",
	"Why do you want to join our company?",
}

// Loader reads the question bank from a file each time a call starts, so
// edits apply to the next call without a restart.
type Loader struct {
	Path string
}

// Load returns the configured questions, or a copy of Fallback when the file
// is missing, unreadable, malformed, or empty. It never fails.
func (l Loader) Load() []string {
	qs, err := ReadFile(l.Path)
	if err != nil {
		slog.Warn("using fallback questions", "path", l.Path, "error", err, "count", len(Fallback))
		return append([]string(nil), Fallback...)
	}
	slog.Debug("loaded questions", "path", l.Path, "count", len(qs))
	return qs
}

// ReadFile parses a question bank. Files ending in .yaml or .yml are YAML;
// anything else is JSON. The document is either a list of strings or an
// object with a "questions" list.
func ReadFile(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("no questions path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parse(data, yaml.Unmarshal)
	default:
		return parse(data, json.Unmarshal)
	}
}

type document struct {
	Questions []string `json:"questions" yaml:"questions"`
}

func parse(data []byte, unmarshal func([]byte, any) error) ([]string, error) {
	var list []string
	if err := unmarshal(data, &list); err != nil {
		var doc document
		if err2 := unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("failed to parse questions: %w", err)
		}
		list = doc.Questions
	}

	// Question text is part of each answer's key, so repeats collapse
	qs := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, q := range list {
		if q = strings.TrimSpace(q); q != "" && !seen[q] {
			seen[q] = true
			qs = append(qs, q)
		}
	}
	if len(qs) == 0 {
		return nil, ErrEmptyBank
	}
	return qs, nil
}
