package session

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// Level is the strength of a per-drink setting (sugar or ice).
// The zero value LevelUnset means the customer has not chosen yet.
type Level int

const (
	// LevelUnset means no choice has been made for this setting.
	LevelUnset Level = iota

	// LevelNone requests none of the setting.
	LevelNone

	// LevelLow requests a small amount.
	LevelLow

	// LevelMedium is the regular amount.
	LevelMedium

	// LevelHigh requests an extra amount.
	LevelHigh
)

func getLevelStrings() map[Level]string {
	return map[Level]string{
		LevelUnset:  "unset",
		LevelNone:   "none",
		LevelLow:    "low",
		LevelMedium: "medium",
		LevelHigh:   "high",
	}
}

func getValidLevelStrings() map[Level]string {
	//nolint:exhaustive // LevelUnset is not a selectable level
	return map[Level]string{
		LevelNone:   "none",
		LevelLow:    "low",
		LevelMedium: "medium",
		LevelHigh:   "high",
	}
}

// LevelFromString parses a selectable level name ("none", "low", "medium", "high").
func LevelFromString(s string) (Level, error) {
	for level, str := range getValidLevelStrings() {
		if str == s {
			return level, nil
		}
	}
	return LevelUnset, errs.NewValueIsInvalidErrorWithCause(
		"level", fmt.Errorf("%q is not a valid level", s))
}

// LevelNames lists the selectable level names in menu order.
func LevelNames() []string {
	return []string{"none", "low", "medium", "high"}
}

// Validate checks that the level is one of the selectable values.
func (l Level) Validate() error {
	if _, ok := getValidLevelStrings()[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"level", fmt.Errorf("%d is not a valid level", l))
	}
	return nil
}

// IsSet reports whether the customer has chosen a value.
func (l Level) IsSet() bool {
	return l != LevelUnset
}

// String returns the menu name of the level, or "unset".
func (l Level) String() string {
	if str, ok := getLevelStrings()[l]; ok {
		return str
	}
	return "unset"
}
