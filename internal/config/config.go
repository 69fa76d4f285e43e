// Package config holds the simulation's tuning constants. The defaults are
// the shipped gameplay balance; a YAML scenario file can override individual
// knobs for testing alternative balances.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every tunable coefficient of the simulation. These are
// gameplay design choices, not estimates of real electoral behaviour.
type Config struct {
	// Parliament timing (turns are months).
	TurnsPerParliament int `yaml:"turns_per_parliament"` // forced dissolution
	MinElectionTurns   int `yaml:"min_election_turns"`   // earliest voluntary election

	// Polling model.
	PollNoise        float64 `yaml:"poll_noise"`         // ± uniform noise per turn
	PollReversion    float64 `yaml:"poll_reversion"`     // pull toward baseline
	ApprovalFeedback float64 `yaml:"approval_feedback"`  // (approval−50) × this
	UnityLow         int     `yaml:"unity_low"`          // below this, unity costs support
	UnityPenalty     float64 `yaml:"unity_penalty"`      // (low−unity) × this
	PollFloor        float64 `yaml:"poll_floor"`         // residual support floor
	PlayerPollFloor  float64 `yaml:"player_poll_floor"`  // player never falls below

	// Scalar drift targets ("gravity of office").
	ApprovalTarget int     `yaml:"approval_target"`
	ApprovalDrift  float64 `yaml:"approval_drift"`
	UnityTarget    int     `yaml:"unity_target"`
	UnityDrift     float64 `yaml:"unity_drift"`

	// Campaign resource accrual per turn.
	FundsPerTurn     int `yaml:"funds_per_turn"`
	ActivistsPerTurn int `yaml:"activists_per_turn"`

	// Bill division model.
	ProposerRebelRate   float64 `yaml:"proposer_rebel_rate"`
	GovernmentRebelRate float64 `yaml:"government_rebel_rate"`
	AssumedUnity        float64 `yaml:"assumed_unity"`     // non-player government parties
	VoteNoiseSeats      int     `yaml:"vote_noise_seats"`  // ± per-party seat noise

	// Narrative generator.
	OllamaEndpoint string `yaml:"ollama_endpoint"`
	OllamaModel    string `yaml:"ollama_model"`
}

// Default returns the shipped balance.
func Default() Config {
	return Config{
		TurnsPerParliament: 60, // five years of months
		MinElectionTurns:   12,

		PollNoise:        1.5,
		PollReversion:    0.05,
		ApprovalFeedback: 0.03,
		UnityLow:         50,
		UnityPenalty:     0.02,
		PollFloor:        0.1,
		PlayerPollFloor:  0.5,

		ApprovalTarget: 40,
		ApprovalDrift:  0.02,
		UnityTarget:    60,
		UnityDrift:     0.03,

		FundsPerTurn:     100,
		ActivistsPerTurn: 50,

		ProposerRebelRate:   0.15,
		GovernmentRebelRate: 0.20,
		AssumedUnity:        0.75,
		VoteNoiseSeats:      5,

		OllamaEndpoint: "http://localhost:11434",
	}
}

// Load returns the defaults overridden by a YAML scenario file, then by the
// OLLAMA_ENDPOINT and OLLAMA_MODEL environment variables. An empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("OLLAMA_ENDPOINT"); v != "" {
		cfg.OllamaEndpoint = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	return cfg, nil
}
