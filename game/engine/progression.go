package engine

import "fmt"

// CheckLevelUp recomputes the level from accumulated experience and applies
// the level-up bonus if a threshold was crossed. The computed level is
// applied in a single step: an experience jump across several thresholds
// grants one bonus at the final level, not one per level. That matches the
// shipped behavior and is kept deliberately. Returns true if the level
// changed.
func (e *GameEngine) CheckLevelUp() bool {
	newLevel := e.state.Experience/e.tuning.ExperiencePerLevel + 1
	if newLevel <= e.state.Level {
		return false
	}

	e.state.Level = newLevel
	e.state.Money += newLevel * e.tuning.LevelUpMoneyPerLevel
	e.state.Reputation += e.tuning.LevelUpReputation

	e.emit(SeveritySuccess, fmt.Sprintf(e.config.Messages.LevelUp, newLevel))
	return true
}
