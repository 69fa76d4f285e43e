// Command parliament runs the Westminster political simulation server.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/turbodog111/parliament/internal/api"
	"github.com/turbodog111/parliament/internal/campaign"
	"github.com/turbodog111/parliament/internal/config"
	"github.com/turbodog111/parliament/internal/constituency"
	"github.com/turbodog111/parliament/internal/engine"
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/narrative"
	"github.com/turbodog111/parliament/internal/persistence"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML scenario file overriding gameplay balance")
		dbPath     = flag.String("db", "data/parliament.db", "save database path")
		apiPort    = flag.Int("port", 8080, "HTTP API port")
		slot       = flag.Int("slot", 0, "save slot to resume from (0 = newest, fresh game if none)")
		party      = flag.String("party", "lab", "party to play when starting fresh")
		playerName = flag.String("name", "The Rt Hon Player MP", "player character name when starting fresh")
		seed       = flag.Int64("seed", 0, "deterministic seed (0 = entropy-backed)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// .env is optional; real env vars win.
	godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source
	switch {
	case *seed != 0:
		rng = entropy.NewSeeded(*seed)
		slog.Info("seeded entropy", "seed", *seed)
	default:
		if client := entropy.NewClient(os.Getenv("RANDOM_ORG_KEY")); client != nil {
			rng = client
			slog.Info("random.org entropy pool enabled")
		} else {
			rng = entropy.System()
		}
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── World: resume or fresh ────────────────────────────────────────
	world, err := loadOrCreate(db, *slot, politics.PartyID(*party), *playerName)
	if err != nil {
		slog.Error("failed to prepare game", "error", err)
		os.Exit(1)
	}

	// ── Constituency map (deterministic from seed) ────────────────────
	mapSeed := *seed
	if mapSeed == 0 {
		mapSeed = 1
	}
	catalog := constituency.Generate(mapSeed)
	slog.Info("constituency map generated", "seats", catalog.Len())

	eng := engine.New(cfg, catalog, rng)
	mgr := campaign.New(eng, rng)

	// ── Narrative generator ──────────────────────────────────────────
	gen := narrative.NewClient(cfg.OllamaEndpoint, cfg.OllamaModel)
	if gen != nil {
		slog.Info("narrative generator enabled", "endpoint", cfg.OllamaEndpoint, "model", cfg.OllamaModel)
	} else {
		slog.Warn("OLLAMA_MODEL not set, events and headlines will use the static pool")
	}
	svc := narrative.NewService(gen, rng)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("PARLIAMENT_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("PARLIAMENT_ADMIN_KEY not set, control POST endpoints will be disabled")
	}

	server := &api.Server{
		World:     world,
		Eng:       eng,
		Campaign:  mgr,
		Narrative: svc,
		DB:        db,
		Port:      *apiPort,
		AdminKey:  adminKey,
	}
	server.Start()

	p := politics.ByID(world.PlayerParty)
	partyName := string(world.PlayerParty)
	if p != nil {
		partyName = p.Name
	}
	fmt.Printf("\nParliament is sitting: %s leads %s with %s in the war chest and %s activists.\n",
		world.PlayerName, partyName,
		"£"+humanize.Comma(int64(world.PartyFunds)),
		humanize.Comma(int64(world.Activists)))
	fmt.Printf("It is %s, turn %d. API: http://localhost:%d/api/v1/status\n",
		state.Date(world.Turn), world.Turn, *apiPort)
	fmt.Println("Press Ctrl+C to save and exit.")

	// ── Run until signal ─────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, saving", "signal", sig)

	if err := db.Save(autosaveSlot(*slot), world); err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("Game saved. Parliament stands adjourned.")
}

// loadOrCreate resumes from a save slot or starts a fresh game. With slot 0
// the most recently updated slot wins; a fresh game starts when no saves
// exist.
func loadOrCreate(db *persistence.DB, slot int, party politics.PartyID, name string) (*state.World, error) {
	if slot > 0 {
		w, err := db.Load(slot)
		if err != nil {
			return nil, err
		}
		slog.Info("game resumed", "slot", slot, "turn", w.Turn, "date", state.Date(w.Turn))
		return w, nil
	}

	slots, err := db.List()
	if err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		newest := slots[0]
		for _, s := range slots[1:] {
			if s.UpdatedAt > newest.UpdatedAt {
				newest = s
			}
		}
		w, err := db.Load(newest.Slot)
		if err != nil {
			return nil, err
		}
		slog.Info("game resumed", "slot", newest.Slot, "turn", w.Turn, "date", state.Date(w.Turn))
		return w, nil
	}

	w, err := state.New(party, name)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	slog.Info("new game started", "party", party, "player", name)
	return w, nil
}

// autosaveSlot picks where the shutdown save lands: the resumed slot, or
// slot 1 for fresh games.
func autosaveSlot(slot int) int {
	if slot >= 1 && slot <= persistence.MaxSlots {
		return slot
	}
	return 1
}
