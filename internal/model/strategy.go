package model

// Opponent strategy constants
const (
	StrategyRandom = "random"
)

// StrategyDisplayName returns a human-readable label for a strategy
func StrategyDisplayName(strategy string) string {
	switch strategy {
	case StrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidStrategies returns all valid opponent strategy names
func ValidStrategies() []string {
	return []string{StrategyRandom}
}
