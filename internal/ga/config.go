// Package ga implements the constraint-driven genetic algorithm that evolves
// a population of candidate Schedules toward a feasible, high-scoring
// double round-robin draw. The package is self-contained: it knows nothing
// about HTTP, websockets or persistence — those concerns live in
// internal/jobrunner and internal/api, which drive an Optimizer from the
// outside.
package ga

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
)

// Seeder strategy names, shared between Config.InitStrategies and the
// seeder registry in seed.go.
const (
	StrategyRandom       = "random"
	StrategyRoundRobin   = "round_robin"
	StrategyBalanced     = "balanced"
	StrategyStadiumAware = "stadium_aware"
)

// Soft constraint names, shared between Config.SoftWeights and the soft
// constraint registry in constraints.go.
const (
	SoftHomeAwayBalance   = "home_away_balance"
	SoftTravelDistance    = "travel_distance"
	SoftCompetitiveBalance = "competitive_balance"
	SoftRestDaysFairness  = "rest_days_fairness"
	SoftDerbyDistribution = "derby_distribution"
)

// Hard constraint names, shared between Config.PenaltyWeights and the hard
// constraint registry in constraints.go.
const (
	HardAllMatchups       = "all_matchups"
	HardNoConsecutive     = "no_consecutive"
	HardOneMatchPerRound  = "one_match_per_round"
	HardStadiumConflict   = "stadium_conflict"
	HardCorrectStadium    = "correct_stadium"
	HardTotalMatches      = "total_matches"
	HardMatchesPerRound   = "matches_per_round"
)

// Config holds every tunable hyperparameter of the GA driver. All fields
// are optional — DefaultConfig fills in the documented defaults, and the
// quick_test/production presets start from those and override a handful.
type Config struct {
	PopulationSize int
	NGenerations   int

	CrossoverProb float64
	MutationProb  float64

	TournamentSize int
	NElites        int

	InitStrategies map[string]float64

	SoftWeights    map[string]float64
	PenaltyWeights map[string]float64

	UseRepair           bool
	MaxRepairIterations int

	EarlyStopping                bool
	EarlyStoppingPatience        int
	EarlyStoppingMinImprovement  float64

	UseLocalSearch       bool
	LocalSearchFrequency int

	// RandomSeed seeds the single deterministic PRNG source used by this
	// optimizer instance. Nil means "seed from system entropy".
	RandomSeed *int64

	// Workers bounds the goroutine pool used to parallelise population
	// evaluation (the one step the concurrency model allows to run off
	// the main generational loop). Zero means "pick GOMAXPROCS".
	Workers int
}

// DefaultConfig returns the configuration described in the external
// interfaces table: population 200, 1000 generations, default operator
// probabilities and constraint weights, repair and early stopping enabled,
// local search disabled.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 200,
		NGenerations:   1000,
		CrossoverProb:  0.8,
		MutationProb:   0.2,
		TournamentSize: 3,
		NElites:        2,
		InitStrategies: map[string]float64{
			StrategyRandom:       0.40,
			StrategyRoundRobin:   0.20,
			StrategyBalanced:     0.20,
			StrategyStadiumAware: 0.20,
		},
		SoftWeights: map[string]float64{
			SoftHomeAwayBalance:    0.25,
			SoftTravelDistance:     0.30,
			SoftCompetitiveBalance: 0.20,
			SoftRestDaysFairness:   0.15,
			SoftDerbyDistribution:  0.10,
		},
		PenaltyWeights: map[string]float64{
			HardAllMatchups:      1000,
			HardNoConsecutive:    500,
			HardOneMatchPerRound: 1000,
			HardStadiumConflict:  800,
			HardCorrectStadium:   500,
			HardTotalMatches:     1000,
			HardMatchesPerRound:  1000,
		},
		UseRepair:                   true,
		MaxRepairIterations:         50,
		EarlyStopping:               true,
		EarlyStoppingPatience:       100,
		EarlyStoppingMinImprovement: 0.01,
		UseLocalSearch:              false,
		LocalSearchFrequency:        50,
	}
}

// QuickTestConfig returns a small, fast-converging configuration suitable
// for tests and local experimentation.
func QuickTestConfig() Config {
	c := DefaultConfig()
	c.PopulationSize = 50
	c.NGenerations = 100
	c.EarlyStoppingPatience = 20
	return c
}

// ProductionConfig returns the configuration recommended for a real
// optimization run.
func ProductionConfig() Config {
	c := DefaultConfig()
	c.PopulationSize = 300
	c.NGenerations = 2000
	c.CrossoverProb = 0.85
	c.MutationProb = 0.15
	c.TournamentSize = 5
	c.NElites = 5
	c.UseLocalSearch = true
	return c
}

// workers returns the effective worker-pool size for population evaluation.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func validateShareMap(result *multierror.Error, label string, shares map[string]float64, requireNonNegative bool) *multierror.Error {
	sum := 0.0
	for key, v := range shares {
		if requireNonNegative && v < 0 {
			result = multierror.Append(result, fmt.Errorf("%s[%s]: must be >= 0, got %v", label, key, v))
		}
		sum += v
	}
	if len(shares) > 0 && (sum < 0.99 || sum > 1.01) {
		result = multierror.Append(result, fmt.Errorf("%s: shares must sum to 1 (+/- 0.01), got %v", label, sum))
	}
	return result
}

// Validate checks every constraint in the external interfaces table,
// aggregating every violation found into a single error rather than
// stopping at the first, in the style of the teacher's constraint
// configuration validators.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.PopulationSize < 10 {
		result = multierror.Append(result, fmt.Errorf("population_size: must be >= 10, got %d", c.PopulationSize))
	}
	if c.NGenerations < 1 {
		result = multierror.Append(result, fmt.Errorf("n_generations: must be >= 1, got %d", c.NGenerations))
	}
	if c.CrossoverProb < 0 || c.CrossoverProb > 1 {
		result = multierror.Append(result, fmt.Errorf("crossover_prob: must be in [0,1], got %v", c.CrossoverProb))
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		result = multierror.Append(result, fmt.Errorf("mutation_prob: must be in [0,1], got %v", c.MutationProb))
	}
	if c.TournamentSize < 2 || (c.PopulationSize >= 2 && c.TournamentSize > c.PopulationSize) {
		result = multierror.Append(result, fmt.Errorf("tournament_size: must be in [2, population_size], got %d (population_size=%d)", c.TournamentSize, c.PopulationSize))
	}
	if c.NElites < 0 || c.NElites >= c.PopulationSize {
		result = multierror.Append(result, fmt.Errorf("n_elites: must be in [0, population_size), got %d (population_size=%d)", c.NElites, c.PopulationSize))
	}

	result = validateShareMap(result, "init_strategies", c.InitStrategies, true)
	result = validateShareMap(result, "soft_weights", c.SoftWeights, true)

	for key, w := range c.PenaltyWeights {
		if w < 0 {
			result = multierror.Append(result, fmt.Errorf("penalty_weights[%s]: must be >= 0, got %v", key, w))
		}
	}

	if c.MaxRepairIterations < 1 {
		result = multierror.Append(result, fmt.Errorf("max_repair_iterations: must be >= 1, got %d", c.MaxRepairIterations))
	}
	if c.EarlyStopping {
		if c.EarlyStoppingPatience < 1 {
			result = multierror.Append(result, fmt.Errorf("early_stopping_patience: must be >= 1, got %d", c.EarlyStoppingPatience))
		}
		if c.EarlyStoppingMinImprovement < 0 {
			result = multierror.Append(result, fmt.Errorf("early_stopping_min_improvement: must be >= 0, got %v", c.EarlyStoppingMinImprovement))
		}
	}
	if c.UseLocalSearch && c.LocalSearchFrequency < 1 {
		result = multierror.Append(result, fmt.Errorf("local_search_frequency: must be >= 1, got %d", c.LocalSearchFrequency))
	}

	return result.ErrorOrNil()
}
