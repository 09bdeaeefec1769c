package shot

import (
	"github.com/mcoot/battleship/internal/model"
)

// Resolve fires at target on the defender's fleet and records the result in
// the attacker's shot record. A target already in the record is rejected
// with ErrAlreadyTargeted and nothing changes.
func Resolve(record *model.ShotRecord, defender *model.Fleet, target model.Index) (model.ShotOutcome, error) {
	if !target.Valid() {
		return "", model.ErrInvalidIndex
	}
	if record.Targets.Contains(target) {
		return "", model.ErrAlreadyTargeted
	}

	record.Targets.Add(target)
	if defender.Cells.Contains(target) {
		record.Hits++
		return model.OutcomeHit, nil
	}
	return model.OutcomeMiss, nil
}
