package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Theme is the colour theme of the launcher window.
type Theme string

// Available themes.
const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// PluginSettings holds per-plugin launcher settings.
type PluginSettings struct {
	Disabled      bool   `json:"disabled"`
	ActionKeyword string `json:"action_keyword,omitempty"`
	Weight        int    `json:"weight"`
}

// LauncherSettings is the document persisted by the typedstore CLI.
// It is a representative application-defined shape for JSON storage.
type LauncherSettings struct {
	Hotkey             string                    `json:"hotkey"`
	MaxResults         int                       `json:"max_results"`
	Theme              Theme                     `json:"theme"`
	ClearInputOnLaunch bool                      `json:"clear_input_on_launch"`
	IgnoredPlugins     []string                  `json:"ignored_plugins"`
	Plugins            map[string]PluginSettings `json:"plugins"`
	LastQuery          *string                   `json:"last_query"`
}

// DefaultLauncherSettings returns the settings used when nothing is stored.
func DefaultLauncherSettings() *LauncherSettings {
	return &LauncherSettings{
		Hotkey:         "Alt+Space",
		MaxResults:     8,
		Theme:          ThemeSystem,
		IgnoredPlugins: []string{},
		Plugins:        map[string]PluginSettings{},
	}
}

// LauncherSettingKeys lists the keys accepted by LauncherSettings.Set.
func LauncherSettingKeys() []string {
	return []string{"hotkey", "max_results", "theme", "clear_input_on_launch", "ignored_plugins", "last_query"}
}

// Set updates a single top-level setting from its string form.
// An empty value for last_query clears it.
func (s *LauncherSettings) Set(key, value string) error {
	switch key {
	case "hotkey":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: hotkey must not be empty", ErrInvalidInput)
		}
		s.Hotkey = value
	case "max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: max_results must be a positive integer", ErrInvalidInput)
		}
		s.MaxResults = n
	case "theme":
		theme := Theme(strings.ToLower(value))
		if !theme.IsValid() {
			return fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, value)
		}
		s.Theme = theme
	case "clear_input_on_launch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: clear_input_on_launch must be a boolean", ErrInvalidInput)
		}
		s.ClearInputOnLaunch = b
	case "ignored_plugins":
		s.IgnoredPlugins = splitList(value)
	case "last_query":
		if value == "" {
			s.LastQuery = nil
			return nil
		}
		s.LastQuery = &value
	default:
		return fmt.Errorf("%w: unknown setting %q", ErrNotFound, key)
	}
	return nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(value string) []string {
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}
