package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

const validJSON = `{
	"name": "mono",
	"description": "Test theme",
	"first_player": "light",
	"glyphs": {"dark": "X", "light": "O", "empty": "."},
	"players": {"dark": "Cross", "light": "Nought"}
}`

func TestValidateTheme_Valid(t *testing.T) {
	dir := t.TempDir()

	result := validateTheme(writeTheme(t, dir, "mono.json", validJSON))
	if !result.Valid {
		t.Fatalf("Expected valid theme, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 2 || !strings.Contains(result.Errors[0], "light (Nought)") {
		t.Errorf("Unexpected info messages: %v", result.Errors)
	}
}

func TestValidateTheme_YAML(t *testing.T) {
	dir := t.TempDir()
	content := "name: ascii\nfirst_player: dark\nglyphs:\n  dark: \"#\"\n  light: \"o\"\n  empty: \".\"\nplayers:\n  dark: Hash\n  light: Ring\n"

	result := validateTheme(writeTheme(t, dir, "ascii.yml", content))
	if !result.Valid {
		t.Errorf("Expected valid yaml theme, got errors: %v", result.Errors)
	}
}

func TestValidateTheme_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file     string
		content  string
		expected string
	}{
		{"broken.json", "{", "Invalid JSON"},
		{"broken.yaml", "glyphs: [", "Invalid YAML"},
		{"other.json", validJSON, "does not match file name"},
		{"same.json", strings.Replace(validJSON, `"light": "O"`, `"light": "X"`, 1), "invalid configuration"},
		{"wide.json", strings.Replace(validJSON, `"empty": "."`, `"empty": ".."`, 1), "invalid configuration"},
		{"nobody.json", strings.Replace(validJSON, `"first_player": "light"`, `"first_player": "red"`, 1), "invalid configuration"},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			result := validateTheme(writeTheme(t, dir, test.file, test.content))
			if result.Valid {
				t.Fatal("Expected theme to be invalid")
			}
			if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], test.expected) {
				t.Errorf("Expected error containing %q, got %v", test.expected, result.Errors)
			}
		})
	}
}

func TestValidateTheme_MissingFile(t *testing.T) {
	result := validateTheme(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid || !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read failure, got %+v", result)
	}
}

func TestThemeFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "c.yml", "notes.txt"} {
		writeTheme(t, dir, name, "x")
	}

	files, err := themeFiles(dir)
	if err != nil {
		t.Fatalf("themeFiles failed: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	if strings.Join(names, ",") != "a.json,b.yaml,c.yml" {
		t.Errorf("Unexpected files %v", names)
	}
}

func TestRepositoryThemes(t *testing.T) {
	dir := filepath.Join("..", "configs")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	files, err := themeFiles(dir)
	if err != nil {
		t.Fatalf("themeFiles failed: %v", err)
	}
	for _, file := range files {
		if result := validateTheme(file); !result.Valid {
			t.Errorf("%s: %v", result.File, result.Errors)
		}
	}
}
