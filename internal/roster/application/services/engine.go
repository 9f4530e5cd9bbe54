package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
	"github.com/rotaplan/rotaplan/internal/roster/infrastructure/milp"
)

// Stage tags the pipeline step that produced a result.
type Stage string

const (
	StageTier3      Stage = "tier3"
	StageTier2      Stage = "tier2"
	StageTier1Force Stage = "tier1_force"
	StageGreedy     Stage = "greedy"
	// StageNone marks a success response whose shift list is empty because
	// no step produced an assignment.
	StageNone Stage = "none"
)

// stageFor names the stage of a tier attempt.
func stageFor(tier Tier, force bool) Stage {
	switch tier {
	case TierFull:
		if force {
			return Stage("tier3_force")
		}
		return StageTier3
	case TierCoverage:
		if force {
			return Stage("tier2_force")
		}
		return StageTier2
	default:
		return StageTier1Force
	}
}

// Statistics summarizes a produced schedule.
type Statistics struct {
	Assignments int     `json:"assignments"`
	FilledSlots int     `json:"filled_slots"`
	TotalSlots  int     `json:"total_slots"`
	FillRate    float64 `json:"fill_rate"`
	TotalHours  float64 `json:"total_hours"`
	SolverNodes int     `json:"solver_nodes,omitempty"`
}

// SolveResult is the engine's response: always a success, possibly with an
// empty shift list when no step could produce assignments.
type SolveResult struct {
	Status     string              `json:"status"`
	Stage      Stage               `json:"mode"`
	Shifts     []domain.Shift      `json:"shifts"`
	Statistics Statistics          `json:"statistics"`
	Violations []CoverageViolation `json:"violations,omitempty"`
	Duration   time.Duration       `json:"-"`
}

// EngineConfig tunes the engine.
type EngineConfig struct {
	// TimeLimit bounds each tier's MILP solve wall clock.
	TimeLimit time.Duration
}

// DefaultEngineConfig returns the production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{TimeLimit: 120 * time.Second}
}

// Engine produces a feasible, cost-minimal roster for one location over a
// horizon of dates. Every solve rebuilds all derived state; the engine
// itself holds only configuration and a logger.
type Engine struct {
	config EngineConfig
	logger *slog.Logger
}

// NewEngine creates an engine.
func NewEngine(config EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TimeLimit <= 0 {
		config.TimeLimit = DefaultEngineConfig().TimeLimit
	}
	return &Engine{config: config, logger: logger}
}

// Solve resolves the request and walks the tier cascade: the full model
// first, then coverage-only, then the forced legal tier, then the greedy
// filler. The first step yielding a non-empty validated shift list wins.
// Solver infeasibility is never an error; malformed input is.
func (e *Engine) Solve(ctx context.Context, input domain.SolveInput) (*SolveResult, error) {
	started := time.Now()
	problem, err := domain.NewProblem(input)
	if err != nil {
		return nil, err
	}

	force := problem.Mode.Force()
	attempts := []struct {
		tier  Tier
		force bool
	}{
		{TierFull, force},
		{TierCoverage, force},
		{TierLegal, true},
	}

	for _, attempt := range attempts {
		stage := stageFor(attempt.tier, attempt.force)
		shifts, nodes, ok := e.solveTier(ctx, problem, attempt.tier, attempt.force)
		if !ok || len(shifts) == 0 {
			e.logger.Info("tier produced no usable schedule", "stage", string(stage))
			continue
		}
		result := e.finish(problem, stage, shifts, started)
		result.Statistics.SolverNodes = nodes
		return result, nil
	}

	e.logger.Warn("all solver tiers failed, running greedy filler")
	shifts := greedyFill(problem, e.logger)
	stage := StageGreedy
	if len(shifts) == 0 {
		stage = StageNone
	}
	return e.finish(problem, stage, shifts, started), nil
}

// solveTier builds and solves one tier's MILP and extracts its schedule.
// Backend errors and infeasibility are both tier failures.
func (e *Engine) solveTier(ctx context.Context, p *domain.Problem, tier Tier, force bool) ([]domain.Shift, int, bool) {
	opts := newOptionTable(p, force)
	model, vars := buildTierModel(p, opts, tier, force)
	if model.NumVars() == 0 {
		return nil, 0, false
	}
	e.logger.Debug("solving tier",
		"tier", int(tier),
		"force", force,
		"variables", model.NumVars(),
		"constraints", model.NumConstraints(),
	)

	solution, err := milp.Solve(ctx, model, milp.Options{TimeLimit: e.config.TimeLimit})
	if err != nil {
		e.logger.Error("solver backend failed", "tier", int(tier), "error", err)
		return nil, 0, false
	}
	e.logger.Info("solver finished",
		"tier", int(tier),
		"status", solution.Status.String(),
		"nodes", solution.Nodes,
	)
	if !solution.Status.Usable() {
		return nil, solution.Nodes, false
	}

	var shifts []domain.Shift
	for _, entry := range vars.entries {
		if solution.Value(entry.v) < 0.5 {
			continue
		}
		staff := p.Staff[entry.staffIdx]
		day := p.Calendar.Days[entry.dateIdx]
		opt := opts.at(entry.staffIdx, entry.dateIdx)[entry.optIdx]
		shifts = append(shifts, domain.NewShift(p.Policy, staff, day.Date, opt, force))
	}
	return shifts, solution.Nodes, true
}

// finish validates the schedule and assembles the result.
func (e *Engine) finish(p *domain.Problem, stage Stage, shifts []domain.Shift, started time.Time) *SolveResult {
	violations := Validate(p, shifts, e.logger)
	result := &SolveResult{
		Status:     "success",
		Stage:      stage,
		Shifts:     shifts,
		Statistics: computeStatistics(p, shifts),
		Violations: violations,
		Duration:   time.Since(started),
	}
	e.logger.Info("schedule produced",
		"stage", string(stage),
		"shifts", len(shifts),
		"violations", len(violations),
		"duration", result.Duration,
	)
	return result
}

// computeStatistics fills the result statistics from the final schedule.
func computeStatistics(p *domain.Problem, shifts []domain.Shift) Statistics {
	stats := Statistics{Assignments: len(shifts)}
	for _, shift := range shifts {
		start, end := shift.Window()
		stats.TotalHours += float64(end-start) / 60
	}
	for _, day := range p.Calendar.Days {
		cov := domain.NewCoverage(day, shifts)
		for i, required := range cov.Slots.Required {
			if required <= 0 {
				continue
			}
			stats.TotalSlots++
			if cov.Count[i] >= required {
				stats.FilledSlots++
			}
		}
	}
	if stats.TotalSlots > 0 {
		stats.FillRate = float64(stats.FilledSlots) / float64(stats.TotalSlots)
	}
	return stats
}

// CoverageViolation is one slot whose final coverage fell below its
// requirement. Violations are diagnostics: a relaxed solve may legitimately
// return them.
type CoverageViolation struct {
	Date     domain.Date `json:"date"`
	Slot     string      `json:"slot"`
	Required int         `json:"required"`
	Actual   int         `json:"actual"`
}

// String implements fmt.Stringer.
func (v CoverageViolation) String() string {
	return fmt.Sprintf("%s %s: need %d, got %d", v.Date, v.Slot, v.Required, v.Actual)
}

// Validate recomputes slot coverage from emitted shifts and reports every
// slot below its requirement. The schedule stays valid regardless.
func Validate(p *domain.Problem, shifts []domain.Shift, logger *slog.Logger) []CoverageViolation {
	if logger == nil {
		logger = slog.Default()
	}
	var violations []CoverageViolation
	for _, day := range p.Calendar.Days {
		cov := domain.NewCoverage(day, shifts)
		for i, required := range cov.Slots.Required {
			if required <= 0 || cov.Count[i] >= required {
				continue
			}
			violation := CoverageViolation{
				Date:     day.Date,
				Slot:     domain.FormatClock(cov.Slots.Minute(i)),
				Required: required,
				Actual:   cov.Count[i],
			}
			violations = append(violations, violation)
			logger.Warn("slot under-covered",
				"date", string(day.Date),
				"slot", violation.Slot,
				"required", required,
				"actual", cov.Count[i],
			)
		}
	}
	return violations
}
