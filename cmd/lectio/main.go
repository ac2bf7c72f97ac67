package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"lectio/internal/app"
	"lectio/internal/bible"
	"lectio/internal/entitlement"
	"lectio/internal/mirror"
	"lectio/internal/store"
)

// Config is the client configuration, stored as JSON in the config dir and
// created with defaults on first run.
type Config struct {
	Translations string `json:"translations"`
	Database     string `json:"database"`
	MirrorURL    string `json:"mirrorUrl"`
	Token        string `json:"token"`
	// JWTSecret enables offline license checks in self-hosted setups
	// where the same operator runs lectiod.
	JWTSecret string `json:"jwtSecret,omitempty"`
}

func configPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "lectio", "config.json")
}

func defaultConfig() Config {
	return Config{
		Translations: bible.DefaultDir(),
		Database:     store.DefaultPath(),
	}
}

func loadConfig() Config {
	cfg := defaultConfig()
	data, err := os.ReadFile(configPath())
	if err != nil {
		saveConfig(cfg)
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	return cfg
}

func saveConfig(cfg Config) {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0o644)
}

// remoteChecker answers entitlement queries through the mirror.
type remoteChecker struct {
	client *mirror.Client
}

func (r remoteChecker) IsPremium(ctx context.Context) (bool, error) {
	return r.client.Entitlement(ctx)
}

func main() {
	translations := flag.String("translations", "", "Translations directory (overrides config)")
	dbPath := flag.String("db", "", "Annotation database path (overrides config)")
	mirrorURL := flag.String("mirror", "", "Annotation mirror base URL (overrides config)")
	flag.Parse()

	cfg := loadConfig()
	if *translations != "" {
		cfg.Translations = *translations
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *mirrorURL != "" {
		cfg.MirrorURL = *mirrorURL
	}
	if tok := os.Getenv("LECTIO_TOKEN"); tok != "" {
		cfg.Token = tok
	}

	lib, err := bible.NewLibrary(cfg.Translations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading translations: %v\n", err)
		fmt.Fprintf(os.Stderr, "Put *_bible.json files in %s\n", cfg.Translations)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening annotation store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	var mc *mirror.Client
	var checkers entitlement.Fallback
	if cfg.JWTSecret != "" && cfg.Token != "" {
		checkers = append(checkers, entitlement.NewTokenChecker(cfg.JWTSecret, cfg.Token))
	}
	if cfg.MirrorURL != "" {
		mc = mirror.New(cfg.MirrorURL, cfg.Token)
		checkers = append(checkers, remoteChecker{client: mc})
	}

	p := tea.NewProgram(app.New(lib, st, mc, checkers), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
