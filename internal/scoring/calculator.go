package scoring

import (
	"roboscout/internal/domain"
	"roboscout/internal/errs"
)

// Calculate scores a single form. It fails only when a counter is negative.
func Calculate(f *domain.MatchForm) (domain.Score, error) {
	var phases [3]int
	for _, w := range Weights {
		n := w.count(f)
		if n < 0 {
			return domain.Score{}, errs.NewValidationError(w.Field, n, "must not be negative")
		}
		phases[w.Phase] += n * w.Points
	}

	return domain.Score{
		Auto:    phases[PhaseAuto],
		Teleop:  phases[PhaseTeleop],
		Endgame: phases[PhaseEndgame],
		Total:   phases[PhaseAuto] + phases[PhaseTeleop] + phases[PhaseEndgame],
	}, nil
}

// PhaseAverages applies the weight table to averaged raw fields. Every formula
// is linear, so this equals the mean of the per-form scores.
func PhaseAverages(a *domain.Averages) (auto, teleop, endgame float64) {
	var phases [3]float64
	for _, w := range Weights {
		phases[w.Phase] += w.average(a) * float64(w.Points)
	}
	return phases[PhaseAuto], phases[PhaseTeleop], phases[PhaseEndgame]
}

// ValidateForm checks the fields a submission must carry before it reaches the store.
func ValidateForm(f *domain.MatchForm) error {
	if f.TeamNumber == "" {
		return errs.NewValidationError("teamNumber", f.TeamNumber, "is required")
	}
	if f.MatchNumber <= 0 {
		return errs.NewValidationError("matchNumber", f.MatchNumber, "is required and must be positive")
	}
	switch f.StartPosition {
	case domain.StartSide, domain.StartMiddle:
	case "":
		f.StartPosition = domain.StartMiddle
	default:
		return errs.NewValidationError("startPosition", f.StartPosition, "must be side or middle")
	}
	if n := len([]rune(f.Comments)); n > domain.MaxCommentLength {
		return errs.NewValidationError("comments", n, "must be at most 150 characters")
	}
	_, err := Calculate(f)
	return err
}
