package opponent

import (
	"fmt"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

// Strategy defines how the automated opponent picks its targets
type Strategy interface {
	// ChooseTarget selects an index not yet in the record
	ChooseTarget(record *model.ShotRecord) (model.Index, error)
}

// Registry maps strategy names to implementations
type Registry map[string]Strategy

// NewRegistry returns the registry of all built-in strategies
func NewRegistry(rnd random.Random) Registry {
	return Registry{
		model.StrategyRandom: NewRandomStrategy(rnd),
	}
}

// Get returns the named strategy
func (r Registry) Get(name string) (Strategy, error) {
	st, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	return st, nil
}
