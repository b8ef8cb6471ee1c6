package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the economy constants that are shared across all city
// scenarios. A YAML file can override individual knobs; anything omitted
// keeps its default.
type Tuning struct {
	// ExperiencePerLevel is the experience span of one level:
	// level = floor(experience / ExperiencePerLevel) + 1.
	ExperiencePerLevel int `yaml:"experience_per_level"`

	// ExperiencePerReputation converts an order's reputation gain into
	// experience on completion.
	ExperiencePerReputation float64 `yaml:"experience_per_reputation"`

	// TimeBonusMultiplier scales the unused seconds of an order's time
	// limit into bonus money.
	TimeBonusMultiplier float64 `yaml:"time_bonus_multiplier"`

	// LevelUpMoneyPerLevel is granted as newLevel * this on level-up.
	LevelUpMoneyPerLevel int `yaml:"level_up_money_per_level"`

	// LevelUpReputation is granted flat on level-up.
	LevelUpReputation float64 `yaml:"level_up_reputation"`

	// StaffBaseCost and StaffCostPerLevel set the hire price:
	// cost = StaffBaseCost + level * StaffCostPerLevel.
	StaffBaseCost     int `yaml:"staff_base_cost"`
	StaffCostPerLevel int `yaml:"staff_cost_per_level"`

	// StaffReputationGain is granted per successful hire.
	StaffReputationGain float64 `yaml:"staff_reputation_gain"`

	// AutosaveSeconds is the cadence of the periodic save task.
	AutosaveSeconds int `yaml:"autosave_seconds"`
}

// DefaultTuning returns the economy constants the game shipped with.
func DefaultTuning() Tuning {
	return Tuning{
		ExperiencePerLevel:      100,
		ExperiencePerReputation: 10,
		TimeBonusMultiplier:     2,
		LevelUpMoneyPerLevel:    100,
		LevelUpReputation:       5,
		StaffBaseCost:           200,
		StaffCostPerLevel:       50,
		StaffReputationGain:     2,
		AutosaveSeconds:         30,
	}
}

// LoadTuning reads a YAML tuning file and overlays it on the defaults.
// A missing file is not an error; the defaults are returned.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := t.validate(); err != nil {
		return DefaultTuning(), err
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.ExperiencePerLevel <= 0 {
		return fmt.Errorf("tuning validation: experience_per_level must be positive, got %d", t.ExperiencePerLevel)
	}
	if t.ExperiencePerReputation < 0 {
		return fmt.Errorf("tuning validation: experience_per_reputation must be >= 0, got %v", t.ExperiencePerReputation)
	}
	if t.TimeBonusMultiplier < 0 {
		return fmt.Errorf("tuning validation: time_bonus_multiplier must be >= 0, got %v", t.TimeBonusMultiplier)
	}
	if t.StaffBaseCost < 0 || t.StaffCostPerLevel < 0 {
		return fmt.Errorf("tuning validation: staff costs must be >= 0")
	}
	if t.AutosaveSeconds <= 0 {
		return fmt.Errorf("tuning validation: autosave_seconds must be positive, got %d", t.AutosaveSeconds)
	}
	return nil
}
