package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"

	handlers "deckroll/internal/handlers/http"
	"deckroll/internal/handlers/pubsub"
	"deckroll/internal/models"
	"deckroll/internal/repositories"
	"deckroll/internal/repositories/catalog"
	"deckroll/internal/usecases"
	"deckroll/internal/utils/command"
)

type Config struct {
	APIPort        int      `env:"API_PORT" envDefault:"8080"`
	RedisAddr      string   `env:"REDIS_ADDR"`
	CardsURL       string   `env:"CARDS_URL"`
	CardsFile      string   `env:"CARDS_FILE" envDefault:"cards.json"`
	ExcludedSets   []string `env:"EXCLUDED_SETS" envSeparator:"," envDefault:"Bloodborn,Ancient Bonds"`
	LegacyFile     string   `env:"LEGACY_FILE"`
	DecklinkPrefix string   `env:"DECKLINK_PREFIX" envDefault:"https://dl.bagoum.com/deckbuilder#"`
}

// legacyData is the injected legacy-catalog configuration: the removal
// card sets and the ban list, card ids only.
type legacyData struct {
	HardRemoval []int `json:"hardRemoval"`
	SoftRemoval []int `json:"softRemoval"`
	Banned      []int `json:"banned"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	color.Cyan("deckroll api starting on port %d", cfg.APIPort)

	cards, err := catalog.Load(cfg.CardsURL, cfg.CardsFile, cfg.ExcludedSets)
	if err != nil {
		slog.Error("failed to load card catalog", "error", err)
		os.Exit(1)
	}

	cmdCfg, err := loadLegacyConfig(cfg.LegacyFile)
	if err != nil {
		slog.Error("failed to load legacy configuration", "file", cfg.LegacyFile, "error", err)
		os.Exit(1)
	}

	repos := repositories.New(cards)
	useCases := usecases.New(repos)

	if cfg.RedisAddr != "" {
		ctx := context.Background()
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to reach redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		color.Green("gateway connected to redis at %s", cfg.RedisAddr)
		pubsub.New(useCases, rdb, ctx, cards, cmdCfg, cfg.DecklinkPrefix).Listen()
	} else {
		slog.Info("no REDIS_ADDR configured, gateway disabled")
	}

	h := handlers.New(useCases, handlers.Options{
		Cards:          cards,
		Command:        cmdCfg,
		DecklinkPrefix: cfg.DecklinkPrefix,
	})
	if err := h.Listen(cfg.APIPort); err != nil {
		slog.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}

// loadLegacyConfig reads the removal and ban lists. No file means empty
// sets, which disables the legacy checks and the ban-list toggle.
func loadLegacyConfig(path string) (command.Config, error) {
	cfg := command.Config{
		Removal: models.RemovalSets{Hard: map[int]bool{}, Soft: map[int]bool{}},
		Banned:  map[int]bool{},
	}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var data legacyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return cfg, err
	}
	for _, id := range data.HardRemoval {
		cfg.Removal.Hard[id] = true
	}
	for _, id := range data.SoftRemoval {
		cfg.Removal.Soft[id] = true
	}
	for _, id := range data.Banned {
		cfg.Banned[id] = true
	}
	return cfg, nil
}
