package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tilepath/internal/pathfinding"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Pathfinder holds all configuration for the pathfind tool.
type Pathfinder struct {
	// Logging: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Search sizing
	Window     int `yaml:"window"`      // working grid extent per axis
	NodeBudget int `yaml:"node_budget"` // frontier capacity per search
	Workers    int `yaml:"workers"`     // batch concurrency, 0 = one per query

	// Query defaults
	Policy      string `yaml:"policy"`
	MaxDistance int    `yaml:"max_distance"`
	MoveNear    bool   `yaml:"move_near"`

	// Collision storage
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultPathfinder returns Pathfinder config with sensible defaults.
func DefaultPathfinder() Pathfinder {
	return Pathfinder{
		LogLevel:    "info",
		Window:      pathfinding.DefaultWindow,
		NodeBudget:  pathfinding.DefaultNodeBudget,
		Workers:     4,
		Policy:      "normal",
		MaxDistance: 64,
		MoveNear:    true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tilepath",
			Password: "tilepath",
			DBName:   "tilepath",
			SSLMode:  "disable",
		},
	}
}

// LoadPathfinder loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPathfinder(path string) (Pathfinder, error) {
	cfg := DefaultPathfinder()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values a search depends on.
func (c Pathfinder) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Window < pathfinding.MinWindow || c.Window > pathfinding.MaxWindow {
		return fmt.Errorf("%w: window %d not in [%d, %d]",
			ErrInvalid, c.Window, pathfinding.MinWindow, pathfinding.MaxWindow)
	}
	if c.NodeBudget < pathfinding.MinNodeBudget || c.NodeBudget > c.Window*c.Window {
		return fmt.Errorf("%w: node_budget %d not in [%d, %d]",
			ErrInvalid, c.NodeBudget, pathfinding.MinNodeBudget, c.Window*c.Window)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if _, err := pathfinding.PolicyByName(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.MaxDistance <= 0 {
		return fmt.Errorf("%w: max_distance %d", ErrInvalid, c.MaxDistance)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalid)
	}
	return nil
}
