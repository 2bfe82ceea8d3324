package ga

import (
	"github.com/hatruonggiang/vleague-scheduler/internal/core/models"
)

// Report is the detailed output of evaluating one schedule: per-constraint
// verdicts plus the scalarized fitness the GA driver optimizes.
type Report struct {
	HardViolations map[string]int
	SoftScores     map[string]float64
	WeightedSoft   float64
	Fitness        float64
	IsValid        bool
}

// Evaluator scores schedules against a fixed set of hard and soft
// constraints, weighted per Config.
type Evaluator struct {
	hard   []HardConstraint
	soft   []SoftConstraint
	config Config
}

// NewEvaluator builds an Evaluator using the default constraint set and the
// weights in cfg.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{
		hard:   DefaultHardConstraints(),
		soft:   DefaultSoftConstraints(),
		config: cfg,
	}
}

// Evaluate computes the full constraint report and fitness for schedule
// against league. Fitness = weighted_soft_score - sum(penalty_weight *
// violations) over the hard constraints; may be negative.
func (ev *Evaluator) Evaluate(league *models.League, schedule models.Schedule) *Report {
	e := NewEvaluation(league, schedule)

	report := &Report{
		HardViolations: make(map[string]int, len(ev.hard)),
		SoftScores:     make(map[string]float64, len(ev.soft)),
		IsValid:        true,
	}

	penalty := 0.0
	for _, c := range ev.hard {
		v := c.Violations(e)
		report.HardViolations[c.Name()] = v
		if v != 0 {
			report.IsValid = false
		}
		penalty += ev.config.PenaltyWeights[c.Name()] * float64(v)
	}

	weightSum := 0.0
	weightedTotal := 0.0
	for _, c := range ev.soft {
		s := c.Score(e)
		report.SoftScores[c.Name()] = s
		w := ev.config.SoftWeights[c.Name()]
		weightedTotal += w * s
		weightSum += w
	}
	if weightSum > 0 {
		report.WeightedSoft = weightedTotal / weightSum
	}

	report.Fitness = report.WeightedSoft - penalty
	return report
}

// Fitness is a convenience that returns only the scalar fitness value, for
// callers that do not need the full report.
func (ev *Evaluator) Fitness(league *models.League, schedule models.Schedule) float64 {
	return ev.Evaluate(league, schedule).Fitness
}
