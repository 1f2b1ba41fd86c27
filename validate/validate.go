// Command validate checks theme files in a config directory (default
// "configs", or the first argument). It checks:
//   - JSON or YAML structure
//   - Required fields and a parseable first player
//   - One distinct character per glyph
//   - That the theme name matches the file name
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/reversi/game/engine"
	"gopkg.in/yaml.v2"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateTheme loads and validates a single theme file.
func validateTheme(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var theme engine.GameConfig
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &theme); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid YAML: %v", err))
			return result
		}
	default:
		if err := json.Unmarshal(data, &theme); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
			return result
		}
	}

	if err := engine.ValidateGameConfig(&theme); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	stem := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if theme.Name != stem {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Name %q does not match file name %q", theme.Name, stem))
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ First player: %s (%s)", theme.StartingColor(), theme.PlayerName(theme.StartingColor())),
		fmt.Sprintf("✓ Glyphs: dark %q, light %q, empty %q", theme.Glyphs.Dark, theme.Glyphs.Light, theme.Glyphs.Empty),
	)
	return result
}

// themeFiles lists json and yaml files in dir, sorted by name.
func themeFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := themeFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding theme files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateTheme(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All themes are valid!")
	} else {
		fmt.Println("❌ Some themes have errors")
		os.Exit(1)
	}
}
