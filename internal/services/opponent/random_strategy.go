package opponent

import (
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

// MaxTargetAttempts is a safety limit on uniform redraws before
// RandomStrategy picks directly from the remaining cells
const MaxTargetAttempts = 1000

// RandomStrategy fires uniformly at cells it has not fired at yet
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseTarget draws indices until it finds one not in the record
func (s *RandomStrategy) ChooseTarget(record *model.ShotRecord) (model.Index, error) {
	if record.Targets.Len() >= model.CellCount {
		return 0, model.ErrNoTargetsLeft
	}

	for range MaxTargetAttempts {
		idx := model.Index(s.random.Intn(model.CellCount))
		if !record.Targets.Contains(idx) {
			return idx, nil
		}
	}

	remaining := record.Remaining()
	return remaining[s.random.Intn(len(remaining))], nil
}
