package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"dotsboxes-local/engine"
)

var (
	cfgFile = "dotsboxes-local/config.json"
	logFile = "dotsboxes-local/dotsboxes.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds tcell palette indices.
type ConfigColors struct {
	BoardColor    int `json:"board"`
	DotColor      int `json:"dot"`
	EmptyLine     int `json:"empty_line"`
	CursorColorFG int `json:"cursor_fg"`
	CursorColorBG int `json:"cursor_bg"`
	LastPlayedBG  int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	Dot        rune `json:"dot"`
	Horizontal rune `json:"horizontal"`
	Vertical   rune `json:"vertical"`
	EmptyH     rune `json:"empty_horizontal"`
	EmptyV     rune `json:"empty_vertical"`
	BoxFill    rune `json:"box_fill"`
}

type Theme struct {
	DrawBoxBackground bool          `json:"draw_box_bg"`
	ShowEmptyLines    bool          `json:"show_empty_lines"`
	Colors            ConfigColors  `json:"colors"`
	Symbols           ConfigSymbols `json:"symbols"`
}

// GameDefaults pre-fill the setup form.
type GameDefaults struct {
	GridSize    int      `json:"grid_size"`
	PlayerCount int      `json:"player_count"`
	PlayerNames []string `json:"player_names"`
	Sound       bool     `json:"sound"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
}

// InitConfig loads the user's config over the defaults. A missing file is
// not an error.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	config.Game.PlayerNames = append([]string(nil), DefaultConfig.Game.PlayerNames...)
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Dot, s.Horizontal, s.Vertical, s.EmptyH, s.EmptyV, s.BoxFill} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Game.GridSize < engine.MinGridSize || c.Game.GridSize > engine.MaxGridSize {
		return &InvalidConfig{fmt.Sprintf("grid_size must be between %d and %d", engine.MinGridSize, engine.MaxGridSize)}
	}
	if c.Game.PlayerCount < engine.MinPlayers || c.Game.PlayerCount > engine.MaxPlayers {
		return &InvalidConfig{fmt.Sprintf("player_count must be between %d and %d", engine.MinPlayers, engine.MaxPlayers)}
	}
	if len(c.Game.PlayerNames) > engine.MaxPlayers {
		return &InvalidConfig{fmt.Sprintf("at most %d player_names", engine.MaxPlayers)}
	}
	return nil
}

// GameConfig builds the engine config for the configured defaults.
func (c *Config) GameConfig() engine.GameConfig {
	names := make([]string, c.Game.PlayerCount)
	copy(names, c.Game.PlayerNames)
	return engine.GameConfig{GridSize: c.Game.GridSize, PlayerNames: names}
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

// LogPath returns the log file location, creating its directory.
func LogPath() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
