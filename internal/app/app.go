// Package app wires config, store, seed data and engine into one runtime
// context shared by the CLI and the HTTP server.
package app

import (
	"fmt"
	"time"

	"planbord/internal/config"
	"planbord/internal/engine"
	"planbord/internal/seed"
	"planbord/internal/store"
)

type App struct {
	Config *config.Config
	Store  *store.Store
	Engine engine.Engine
}

// Bootstrap loads planbord.yml from the workspace (defaults if absent),
// builds the store and applies seed data per the config: a YAML dataset
// when one is named, the built-in demo otherwise, nothing when disabled.
func Bootstrap(workspace string) (*App, error) {
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New builds an App from an already-loaded config.
func New(cfg *config.Config) (*App, error) {
	st := store.New()
	switch {
	case cfg.Seed.Disable:
		for _, c := range seed.DefaultTypeConfigs() {
			st.PutTypeConfig(c)
		}
	case cfg.Seed.File != "":
		ds, err := seed.FromFile(cfg.Seed.File)
		if err != nil {
			return nil, fmt.Errorf("load seed %s: %w", cfg.Seed.File, err)
		}
		ds.Apply(st)
	default:
		seed.Demo(time.Now()).Apply(st)
	}
	return &App{
		Config: cfg,
		Store:  st,
		Engine: engine.New(st, cfg),
	}, nil
}
