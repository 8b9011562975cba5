package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionCode string
	SessionFile string
	Output      string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("SKYJO_SERVER", "http://localhost:8080"),
		SessionCode: os.Getenv("SKYJO_SESSION"),
		SessionFile: getEnvOrDefault("SKYJO_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
	}
}

// LoadSessionCode loads the remembered game code from file if not already set
func (c *Config) LoadSessionCode() error {
	if c.SessionCode != "" {
		return nil
	}

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No remembered game is fine
		}
		return err
	}

	c.SessionCode = strings.TrimSpace(string(data))
	return nil
}

// SaveSessionCode remembers the game code for subsequent invocations
func (c *Config) SaveSessionCode(code string) error {
	c.SessionCode = code

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, []byte(code), 0600)
}

// ClearSessionCode forgets the remembered game code
func (c *Config) ClearSessionCode() error {
	c.SessionCode = ""

	err := os.Remove(c.SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveCode returns the code from the args if given, otherwise the
// remembered game code
func (c *Config) ResolveCode(args []string) (string, error) {
	if len(args) > 0 {
		return strings.ToUpper(args[0]), nil
	}
	if c.SessionCode != "" {
		return c.SessionCode, nil
	}
	return "", errors.New("no game code given and none remembered, start one with 'skyjo new'")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skyjo/session"
	}
	return filepath.Join(home, ".skyjo", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
