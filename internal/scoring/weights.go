// Package scoring converts scouting forms into points and ranks teams by their
// averaged points. Every formula here reads the same Weights table, so the
// per-form calculator, the aggregate ranking and the statistics never drift.
package scoring

import "roboscout/internal/domain"

type Phase int

const (
	PhaseAuto Phase = iota
	PhaseTeleop
	PhaseEndgame
)

func (p Phase) String() string {
	switch p {
	case PhaseAuto:
		return "auto"
	case PhaseTeleop:
		return "teleop"
	case PhaseEndgame:
		return "endgame"
	default:
		return "unknown"
	}
}

// Weight is one scoring action: the form field it reads, the phase it counts
// toward and the points a single occurrence is worth.
type Weight struct {
	Field  string
	Phase  Phase
	Points int

	count   func(f *domain.MatchForm) int
	average func(a *domain.Averages) float64
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Weights is the authoritative point table. lowClimb outscoring highClimb is intentional.
var Weights = []Weight{
	{"passedLine", PhaseAuto, 2, func(f *domain.MatchForm) int { return flag(f.PassedLine) }, func(a *domain.Averages) float64 { return a.PassedLine }},
	{"l1CoralsAuto", PhaseAuto, 3, func(f *domain.MatchForm) int { return f.L1CoralsAuto }, func(a *domain.Averages) float64 { return a.L1CoralsAuto }},
	{"l2CoralsAuto", PhaseAuto, 4, func(f *domain.MatchForm) int { return f.L2CoralsAuto }, func(a *domain.Averages) float64 { return a.L2CoralsAuto }},
	{"l3CoralsAuto", PhaseAuto, 6, func(f *domain.MatchForm) int { return f.L3CoralsAuto }, func(a *domain.Averages) float64 { return a.L3CoralsAuto }},
	{"l4CoralsAuto", PhaseAuto, 7, func(f *domain.MatchForm) int { return f.L4CoralsAuto }, func(a *domain.Averages) float64 { return a.L4CoralsAuto }},
	{"netAuto", PhaseAuto, 4, func(f *domain.MatchForm) int { return f.NetAuto }, func(a *domain.Averages) float64 { return a.NetAuto }},

	{"l1CoralsTele", PhaseTeleop, 2, func(f *domain.MatchForm) int { return f.L1CoralsTele }, func(a *domain.Averages) float64 { return a.L1CoralsTele }},
	{"l2CoralsTele", PhaseTeleop, 3, func(f *domain.MatchForm) int { return f.L2CoralsTele }, func(a *domain.Averages) float64 { return a.L2CoralsTele }},
	{"l3CoralsTele", PhaseTeleop, 4, func(f *domain.MatchForm) int { return f.L3CoralsTele }, func(a *domain.Averages) float64 { return a.L3CoralsTele }},
	{"l4CoralsTele", PhaseTeleop, 5, func(f *domain.MatchForm) int { return f.L4CoralsTele }, func(a *domain.Averages) float64 { return a.L4CoralsTele }},
	{"netTele", PhaseTeleop, 4, func(f *domain.MatchForm) int { return f.NetTele }, func(a *domain.Averages) float64 { return a.NetTele }},
	{"processor", PhaseTeleop, 2, func(f *domain.MatchForm) int { return f.Processor }, func(a *domain.Averages) float64 { return a.Processor }},

	{"highClimb", PhaseEndgame, 6, func(f *domain.MatchForm) int { return flag(f.HighClimb) }, func(a *domain.Averages) float64 { return a.HighClimb }},
	{"lowClimb", PhaseEndgame, 12, func(f *domain.MatchForm) int { return flag(f.LowClimb) }, func(a *domain.Averages) float64 { return a.LowClimb }},
}
