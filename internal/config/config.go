package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/thaiqr/internal/history"
	"github.com/danmuck/thaiqr/internal/render"
)

type ServerConfig struct {
	Name         string       `toml:"name"`
	Addr         string       `toml:"addr"`
	CorsOrigins  []string     `toml:"cors_origins"`
	HistoryPath  string       `toml:"history_path"`
	HistoryLimit int          `toml:"history_limit"`
	Render       RenderConfig `toml:"render"`
}

type RenderConfig struct {
	Size     int    `toml:"size"`
	Recovery string `toml:"recovery"`
}

// DefaultServerConfig is used for every key a config file leaves out.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:         "qrd",
		Addr:         ":9300",
		CorsOrigins:  []string{"http://localhost:3000"},
		HistoryLimit: history.DefaultLimit,
		Render: RenderConfig{
			Size:     render.DefaultSize,
			Recovery: "medium",
		},
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// loadToml decodes path over out, so keys missing from the file keep the
// values already in out.
func loadToml(path string, out any) error {
	if _, err := toml.DecodeFile(path, out); err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("server config history_limit must not be negative")
	}
	if cfg.Render.Size <= 0 {
		return fmt.Errorf("server config render.size must be positive")
	}
	if _, err := render.ParseLevel(cfg.Render.Recovery); err != nil {
		return fmt.Errorf("server config render.recovery: %w", err)
	}
	return nil
}

// Renderer builds the PNG renderer described by cfg.
func (cfg ServerConfig) Renderer() (render.PNGRenderer, error) {
	level, err := render.ParseLevel(cfg.Render.Recovery)
	if err != nil {
		return render.PNGRenderer{}, err
	}
	return render.PNGRenderer{Size: cfg.Render.Size, Recovery: level}, nil
}
