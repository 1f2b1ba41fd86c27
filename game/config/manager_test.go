package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/reversi/game/engine"
	"go.uber.org/zap"
)

func createValidConfig(name string) *engine.GameConfig {
	return &engine.GameConfig{
		Name:        name,
		Description: "Test theme",
		FirstPlayer: "dark",
		Glyphs:      engine.Glyphs{Dark: "X", Light: "O", Empty: "."},
		Players:     engine.PlayerNames{Dark: "Xavier", Light: "Olive"},
	}
}

func writeJSONConfig(t *testing.T, dir, filename string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	writeFile(t, dir, filename, string(data))
}

func writeFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

const yamlTheme = `name: ascii
description: Plain ASCII discs
first_player: light
glyphs:
  dark: "#"
  light: "o"
  empty: "."
players:
  dark: Hash
  light: Ring
`

func TestNewManager_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Expected missing directory to be tolerated: %v", err)
	}

	def := manager.GetDefault()
	if def == nil || def.Name != DefaultName {
		t.Fatalf("Expected built-in classic default, got %+v", def)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != DefaultName {
		t.Errorf("Expected only the built-in theme, got %+v", configs)
	}
}

func TestNewManager_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")

	if _, err := NewManager(filepath.Join(dir, "file"), nil); err == nil {
		t.Error("Expected an error when the config path is a file")
	}
}

func TestManager_LoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "mono.json", createValidConfig("mono"))

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("mono")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "mono" || config.Glyphs.Dark != "X" {
		t.Errorf("Unexpected config %+v", config)
	}

	again, err := manager.LoadConfig("mono.json")
	if err != nil {
		t.Fatalf("Failed to load config by filename: %v", err)
	}
	if again != config {
		t.Error("Expected the cached config to be returned")
	}
}

func TestManager_LoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ascii.yaml", yamlTheme)

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("ascii")
	if err != nil {
		t.Fatalf("Failed to load yaml config: %v", err)
	}

	if config.StartingColor() != engine.Light {
		t.Errorf("Expected light to start, got %s", config.StartingColor())
	}
	if config.Glyphs.Dark != "#" || config.Glyphs.Light != "o" || config.Glyphs.Empty != "." {
		t.Errorf("Unexpected glyphs %+v", config.Glyphs)
	}
	if config.Players.Light != "Ring" {
		t.Errorf("Expected player name Ring, got %q", config.Players.Light)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", "{not json")
	writeFile(t, dir, "broken_yaml.yml", "glyphs: [unclosed")

	invalid := createValidConfig("invalid")
	invalid.Glyphs.Light = invalid.Glyphs.Dark
	writeJSONConfig(t, dir, "invalid.json", invalid)

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name     string
		expected error
	}{
		{"missing", ErrConfigNotFound},
		{"broken", ErrInvalidConfig},
		{"broken_yaml", ErrInvalidConfig},
		{"invalid", ErrInvalidConfig},
		{"", ErrConfigNotFound},
		{"..", ErrConfigNotFound},
		{"../broken", ErrConfigNotFound},
		{"sub/broken.json", ErrConfigNotFound},
		{`..\broken`, ErrConfigNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := manager.LoadConfig(test.name)
			if !errors.Is(err, test.expected) {
				t.Errorf("Expected %v, got %v", test.expected, err)
			}
		})
	}
}

func TestManager_NamesStayInConfigDir(t *testing.T) {
	root := t.TempDir()
	writeJSONConfig(t, root, "outside.json", createValidConfig("outside"))

	dir := filepath.Join(root, "themes")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Failed to create theme dir: %v", err)
	}
	writeJSONConfig(t, dir, "inside.json", createValidConfig("inside"))

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for _, name := range []string{"../outside", "../outside.json", filepath.Join(root, "outside.json")} {
		if config, err := manager.LoadConfig(name); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig(%q) = %v, %v; expected ErrConfigNotFound", name, config, err)
		}
		if err := manager.SetDefault(name); err == nil {
			t.Errorf("SetDefault(%q) succeeded", name)
		}
	}

	if _, err := manager.LoadConfig("inside"); err != nil {
		t.Errorf("Expected theme inside the directory to load: %v", err)
	}
}

func TestManager_DefaultFromDisk(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig(DefaultName))

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.GetDefault().Glyphs.Dark != "X" {
		t.Errorf("Expected classic.json to override the built-in default, got %+v", manager.GetDefault().Glyphs)
	}
}

func TestManager_InvalidDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic.json", `{"name": ""}`)

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.GetDefault().Glyphs.Dark != "●" {
		t.Errorf("Expected built-in default after invalid classic.json, got %+v", manager.GetDefault())
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "mono.json", createValidConfig("mono"))
	writeFile(t, dir, "ascii.yaml", yamlTheme)
	writeFile(t, dir, "broken.json", "{")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}

	expected := []string{"ascii", "classic", "mono"}
	if len(configs) != len(expected) {
		t.Fatalf("Expected %d configs, got %d: %+v", len(expected), len(configs), configs)
	}
	for i, id := range expected {
		if configs[i].ConfigID != id {
			t.Errorf("config %d: expected %s, got %s", i, id, configs[i].ConfigID)
		}
	}
	if configs[0].Filename != "ascii.yaml" || configs[0].FirstPlayer != "light" {
		t.Errorf("Unexpected ascii info %+v", configs[0])
	}
	if configs[1].Filename != "" {
		t.Errorf("Expected built-in classic to have no filename, got %q", configs[1].Filename)
	}
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "mono.json", createValidConfig("mono"))

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("mono"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "mono" {
		t.Errorf("Expected mono default, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	updated := createValidConfig("mono")
	updated.Glyphs.Dark = "Z"
	writeJSONConfig(t, dir, "mono.json", updated)

	cached, _ := manager.LoadConfig("mono")
	if cached.Glyphs.Dark != "X" {
		t.Error("Expected the cached theme before refresh")
	}

	manager.RefreshCache()

	fresh, err := manager.LoadConfig("mono")
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if fresh.Glyphs.Dark != "Z" {
		t.Errorf("Expected refreshed theme, got %q", fresh.Glyphs.Dark)
	}
	if manager.GetDefault().Name != DefaultName {
		t.Errorf("Expected refresh to reset the default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "mono.json", createValidConfig("mono"))

	manager, err := NewManager(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("mono"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent load failed: %v", err)
	}
}
