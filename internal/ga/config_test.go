package ga

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got: %v", err)
	}
}

func TestQuickTestConfigValidates(t *testing.T) {
	if err := QuickTestConfig().Validate(); err != nil {
		t.Fatalf("QuickTestConfig should validate, got: %v", err)
	}
}

func TestProductionConfigValidates(t *testing.T) {
	if err := ProductionConfig().Validate(); err != nil {
		t.Fatalf("ProductionConfig should validate, got: %v", err)
	}
}

func TestConfigValidatePopulationSize(t *testing.T) {
	c := DefaultConfig()
	c.PopulationSize = 5
	if err := c.Validate(); err == nil {
		t.Error("expected error for population_size below 10")
	}
}

func TestConfigValidateProbabilitiesOutOfRange(t *testing.T) {
	c := DefaultConfig()
	c.CrossoverProb = 1.5
	c.MutationProb = -0.1
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range probabilities")
	}
}

func TestConfigValidateTournamentSize(t *testing.T) {
	c := DefaultConfig()
	c.PopulationSize = 10
	c.TournamentSize = 20
	if err := c.Validate(); err == nil {
		t.Error("expected error when tournament_size exceeds population_size")
	}
}

func TestConfigValidateNElites(t *testing.T) {
	c := DefaultConfig()
	c.PopulationSize = 10
	c.NElites = 10
	if err := c.Validate(); err == nil {
		t.Error("expected error when n_elites >= population_size")
	}
}

func TestConfigValidateShareSums(t *testing.T) {
	c := DefaultConfig()
	c.InitStrategies = map[string]float64{StrategyRandom: 0.5, StrategyBalanced: 0.2}
	if err := c.Validate(); err == nil {
		t.Error("expected error when init_strategies shares do not sum to 1")
	}
}

func TestConfigValidateNegativePenaltyWeight(t *testing.T) {
	c := DefaultConfig()
	c.PenaltyWeights[HardAllMatchups] = -1
	if err := c.Validate(); err == nil {
		t.Error("expected error for negative penalty weight")
	}
}

func TestConfigValidateAggregatesMultipleErrors(t *testing.T) {
	c := DefaultConfig()
	c.PopulationSize = 1
	c.NGenerations = 0
	c.CrossoverProb = 2
	err := c.Validate()
	if err == nil {
		t.Fatal("expected aggregated error")
	}
}
