package classifier

// Level is the categorical confidence tier derived from a numeric score.
type Level string

// Confidence levels.
const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Thresholds maps numeric confidence scores to levels. Values are inclusive
// lower bounds: a score at exactly High is HIGH, at exactly Medium is MEDIUM.
// If misconfigured (medium above high) the literal comparison governs.
type Thresholds struct {
	High   int
	Medium int
	Low    int
}

// Level derives the confidence level for a score.
func (t Thresholds) Level(score int) Level {
	switch {
	case score >= t.High:
		return LevelHigh
	case score >= t.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}
