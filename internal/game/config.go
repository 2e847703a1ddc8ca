package game

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/settable/internal/deck"
)

// Config holds every tunable of a game. It is read once at construction and
// immutable afterwards.
type Config struct {
	TableSize    int // board capacity in slots
	Features     int // feature positions per card
	Options      int // options per feature; deck size is Options^Features
	SetSize      int // cards per claimed set (K)
	Players      int
	HumanPlayers int // the first HumanPlayers ids take keyboard input, the rest run a generator

	TurnTimeout   time.Duration // countdown until the dealer reshuffles
	WarnTime      time.Duration // remaining time at which the countdown turns urgent
	PointFreeze   time.Duration // input ignored after a correct set
	PenaltyFreeze time.Duration // input ignored after a wrong set
	TableDelay    time.Duration // artificial latency per card placement/removal
	AIInterval    time.Duration // pace of the automated key-press generator

	Hints bool // log the legal sets after every deal
}

// DefaultConfig returns the classic game: 81 cards, 12 slots, sets of 3, two
// automated players, a one minute round.
func DefaultConfig() Config {
	return Config{
		TableSize:     12,
		Features:      4,
		Options:       3,
		SetSize:       3,
		Players:       2,
		HumanPlayers:  0,
		TurnTimeout:   60 * time.Second,
		WarnTime:      10 * time.Second,
		PointFreeze:   time.Second,
		PenaltyFreeze: 3 * time.Second,
		TableDelay:    100 * time.Millisecond,
		AIInterval:    500 * time.Millisecond,
	}
}

// Geometry returns the card-space geometry implied by the config.
func (c Config) Geometry() deck.Geometry {
	return deck.Geometry{Features: c.Features, Options: c.Options, SetSize: c.SetSize}
}

// Validate checks the config for impossible games.
func (c Config) Validate() error {
	if c.Features < 1 || c.Options < 2 {
		return fmt.Errorf("invalid card geometry: %d features x %d options", c.Features, c.Options)
	}
	if c.SetSize < 2 {
		return fmt.Errorf("set size must be at least 2, got %d", c.SetSize)
	}
	if c.SetSize > c.Options {
		return fmt.Errorf("set size %d exceeds options per feature %d", c.SetSize, c.Options)
	}
	if c.TableSize < c.SetSize {
		return fmt.Errorf("table size %d cannot hold a set of %d", c.TableSize, c.SetSize)
	}
	if c.TableSize > c.Geometry().DeckSize() {
		return fmt.Errorf("table size %d exceeds deck size %d", c.TableSize, c.Geometry().DeckSize())
	}
	if c.Players < 1 {
		return fmt.Errorf("need at least one player, got %d", c.Players)
	}
	if c.HumanPlayers < 0 || c.HumanPlayers > c.Players {
		return fmt.Errorf("human players %d out of range [0,%d]", c.HumanPlayers, c.Players)
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("turn timeout must be positive, got %s", c.TurnTimeout)
	}
	if c.WarnTime < 0 || c.WarnTime > c.TurnTimeout {
		return fmt.Errorf("warn time %s out of range [0,%s]", c.WarnTime, c.TurnTimeout)
	}
	if c.TableDelay < 0 {
		return fmt.Errorf("table delay cannot be negative, got %s", c.TableDelay)
	}
	if c.AIInterval <= 0 {
		return fmt.Errorf("ai interval must be positive, got %s", c.AIInterval)
	}
	return nil
}

// fileConfig is the HCL schema. Durations are milliseconds in the file.
type fileConfig struct {
	Game *gameBlock `hcl:"game,block"`
}

type gameBlock struct {
	TableSize       *int  `hcl:"table_size,optional"`
	Features        *int  `hcl:"features,optional"`
	Options         *int  `hcl:"options,optional"`
	SetSize         *int  `hcl:"set_size,optional"`
	Players         *int  `hcl:"players,optional"`
	HumanPlayers    *int  `hcl:"human_players,optional"`
	TurnTimeoutMs   *int  `hcl:"turn_timeout_ms,optional"`
	WarnTimeMs      *int  `hcl:"warn_time_ms,optional"`
	PointFreezeMs   *int  `hcl:"point_freeze_ms,optional"`
	PenaltyFreezeMs *int  `hcl:"penalty_freeze_ms,optional"`
	TableDelayMs    *int  `hcl:"table_delay_ms,optional"`
	AIIntervalMs    *int  `hcl:"ai_interval_ms,optional"`
	Hints           *bool `hcl:"hints,optional"`
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist. File values overlay the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if fc.Game == nil {
		return cfg, nil
	}

	g := fc.Game
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setDur := func(dst *time.Duration, src *int) {
		if src != nil {
			*dst = time.Duration(*src) * time.Millisecond
		}
	}

	setInt(&cfg.TableSize, g.TableSize)
	setInt(&cfg.Features, g.Features)
	setInt(&cfg.Options, g.Options)
	setInt(&cfg.SetSize, g.SetSize)
	setInt(&cfg.Players, g.Players)
	setInt(&cfg.HumanPlayers, g.HumanPlayers)
	setDur(&cfg.TurnTimeout, g.TurnTimeoutMs)
	setDur(&cfg.WarnTime, g.WarnTimeMs)
	setDur(&cfg.PointFreeze, g.PointFreezeMs)
	setDur(&cfg.PenaltyFreeze, g.PenaltyFreezeMs)
	setDur(&cfg.TableDelay, g.TableDelayMs)
	setDur(&cfg.AIInterval, g.AIIntervalMs)
	if g.Hints != nil {
		cfg.Hints = *g.Hints
	}

	return cfg, nil
}
