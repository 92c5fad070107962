// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "json list",
			file:    "questions.json",
			content: `["First?", "  Second?  ", ""]`,
			want:    []string{"First?", "Second?"},
		},
		{
			name:    "duplicates collapse",
			file:    "questions.json",
			content: `["Same?", "Other?", "Same?"]`,
			want:    []string{"Same?", "Other?"},
		},
		{
			name:    "json object",
			file:    "questions.json",
			content: `{"questions": ["Only?"]}`,
			want:    []string{"Only?"},
		},
		{
			name:    "yaml list",
			file:    "questions.yaml",
			content: "- Tell us about yourself.\n- Why this role?\n",
			want:    []string{"Tell us about yourself.", "Why this role?"},
		},
		{
			name:    "yaml object",
			file:    "questions.yml",
			content: "questions:\n  - One\n  - Two\n  - Three\n",
			want:    []string{"One", "Two", "Three"},
		},
		{
			name:    "malformed json",
			file:    "questions.json",
			content: `["unterminated`,
			wantErr: true,
		},
		{
			name:    "empty list",
			file:    "questions.json",
			content: `[]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(writeFile(t, tt.file, tt.content))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoaderFallback(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"no path", ""},
		{"missing file", filepath.Join(t.TempDir(), "absent.json")},
		{"malformed file", writeFile(t, "bad.json", "{not json")},
		{"only blanks", writeFile(t, "blank.json", `["", "   "]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Loader{Path: tt.path}.Load()
			require.Equal(t, Fallback, got)
			require.Len(t, got, 4)
		})
	}
}

func TestLoaderReturnsCopyOfFallback(t *testing.T) {
	got := Loader{}.Load()
	got[0] = "mutated"
	require.Equal(t, "Hi, please tell us your full name.", Fallback[0])
}

func TestLoaderReadsFile(t *testing.T) {
	path := writeFile(t, "questions.json", `["A?", "B?"]`)
	require.Equal(t, []string{"A?", "B?"}, Loader{Path: path}.Load())
}
