package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/config"
	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/llm"
	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/store"
)

// appEnv is what every command needs: settings, a logger, the open
// store and the loaded profile.
type appEnv struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	profile *profile.Service
}

// loadConfig layers the --config, --db and --store flags over the
// config file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.DBPath = p
	}
	if e, _ := cmd.Flags().GetString("store"); e != "" {
		cfg.Store.Engine = e
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file and FOUNDERPATH_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Store.DBPath; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database without touching the
// profile.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openEnv builds the shared environment. Call Close when done. A failed
// step releases the store and flushes the log before returning.
func openEnv(cmd *cobra.Command) (env *appEnv, err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		return nil, err
	}

	var st *store.Store
	defer func() {
		if err == nil {
			return
		}
		if st != nil {
			st.Close()
		}
		log.Error("environment setup failed", "err", err)
		log.Sync()
	}()

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	repo, err := st.ProfileRepoFor(cfg.Store.Engine, cfg.Store.JSONPath)
	if err != nil {
		return nil, fmt.Errorf("profile store: %w", err)
	}
	svc := profile.NewService(repo, log)
	if _, err := svc.Load(cmd.Context()); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	log.Info("environment ready", "db", dbPath, "store", cfg.Store.Engine)
	return &appEnv{cfg: cfg, log: log, store: st, profile: svc}, nil
}

// Close releases the store and flushes the log.
func (e *appEnv) Close() {
	e.store.Close()
	e.log.Sync()
}

// contentClient builds the provider stack from config and environment.
func (e *appEnv) contentClient(cmd *cobra.Command) (*content.Client, error) {
	provider, cfg, err := llm.NewProviderFromEnv(cmd.Context(), e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, err
	}
	e.log.Info("llm provider ready", "provider", cfg.Provider)
	return content.NewClient(provider, e.cfg.Content, e.log), nil
}
