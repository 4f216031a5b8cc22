package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/thaiqr/internal/config"
	"github.com/danmuck/thaiqr/internal/history"
	"github.com/danmuck/thaiqr/internal/logging"
	"github.com/danmuck/thaiqr/internal/observability"
	"github.com/danmuck/thaiqr/internal/qr"
	"github.com/danmuck/thaiqr/internal/server"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

const defaultConfigPath = "cmd/qrd/config.toml"

func main() {
	path := flag.StringP("config", "c", defaultConfigPath, "path to qrd config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	flag.Parse()

	logging.ConfigureRuntime()
	observability.InitLogger("qrd")

	if err := run(*path, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "qrd: %v\n", err)
		os.Exit(1)
	}
}

func run(path, addr string) error {
	cfg, err := resolveConfig(path)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		return err
	}
	var store *history.Store
	if cfg.HistoryPath != "" {
		store = history.Open(cfg.HistoryPath, cfg.HistoryLimit)
	} else {
		store = history.NewStore(cfg.HistoryLimit)
	}

	srv := server.Appear(cfg.Name, cfg.Addr, cfg.CorsOrigins, qr.NewService(renderer, store))
	return srv.Serve()
}

// resolveConfig falls back to defaults when the default config file is
// absent. An explicit path that cannot be read is an error.
func resolveConfig(path string) (config.ServerConfig, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", path).Msg("config not found, using defaults")
			return config.DefaultServerConfig(), nil
		}
	}
	return loadServerConfig(path)
}
