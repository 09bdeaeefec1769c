package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	GameID    string
	GameFile  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BATTLESHIP_SERVER", "http://127.0.0.1:8080"),
		GameID:    os.Getenv("BATTLESHIP_GAME"),
		GameFile:  getEnvOrDefault("BATTLESHIP_GAME_FILE", defaultGameFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadGame loads the current game ID from file if not already set
func (c *Config) LoadGame() error {
	if c.GameID != "" {
		return nil
	}

	data, err := os.ReadFile(c.GameFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	c.GameID = strings.TrimSpace(string(data))
	return nil
}

// SaveGame remembers id as the current game
func (c *Config) SaveGame(id string) error {
	c.GameID = id

	if err := os.MkdirAll(filepath.Dir(c.GameFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(c.GameFile, []byte(id), 0600)
}

// ClearGame forgets the current game if it is id
func (c *Config) ClearGame(id string) error {
	data, err := os.ReadFile(c.GameFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(data)) != id {
		return nil
	}
	return os.Remove(c.GameFile)
}

func defaultGameFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".battleship/game"
	}
	return filepath.Join(home, ".battleship", "game")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
