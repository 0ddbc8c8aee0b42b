// internal/strategy/types.go
//
// Core records for the strategy tracker. A Strategy is written once through
// a Draft and afterwards only its Progress moves.

package strategy

import (
	"fmt"
	"strings"
	"time"
)

// Level selects which collection a strategy belongs to.
type Level string

const (
	LevelCorporate    Level = "Corporate"
	LevelBusinessUnit Level = "Business Unit"
	LevelPlant        Level = "Plant"
)

// Levels lists every level in selector order.
var Levels = []Level{LevelCorporate, LevelBusinessUnit, LevelPlant}

// String returns the display name of the level.
func (l Level) String() string {
	return string(l)
}

func (l Level) index() int {
	for i, candidate := range Levels {
		if candidate == l {
			return i
		}
	}
	return -1
}

// ParseLevel resolves a level name such as form.default_level, ignoring
// case and surrounding whitespace.
func ParseLevel(value string) (Level, error) {
	trimmed := strings.TrimSpace(value)
	for _, level := range Levels {
		if strings.EqualFold(trimmed, string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, value)
}

// Progress tracks how far a strategy has been carried out.
type Progress string

const (
	ProgressNotStarted Progress = "Not Started"
	ProgressInProgress Progress = "In Progress"
	ProgressCompleted  Progress = "Completed"
)

// ProgressValues lists the recognized progress states in selector order.
var ProgressValues = []Progress{ProgressNotStarted, ProgressInProgress, ProgressCompleted}

func (p Progress) String() string {
	return string(p)
}

// Valid reports whether p is a recognized progress state.
func (p Progress) Valid() bool {
	for _, candidate := range ProgressValues {
		if candidate == p {
			return true
		}
	}
	return false
}

// Field identifies one of the six text fields of a strategy.
type Field int

const (
	FieldAspiration Field = iota
	FieldPlayingField
	FieldTactics
	FieldCapabilities
	FieldManagementSystems
	FieldSuccessMeasures
)

// Fields lists the text fields in display order.
var Fields = []Field{
	FieldAspiration,
	FieldPlayingField,
	FieldTactics,
	FieldCapabilities,
	FieldManagementSystems,
	FieldSuccessMeasures,
}

// Title is the column heading used on the dashboard.
func (f Field) Title() string {
	switch f {
	case FieldAspiration:
		return "Winning Aspiration"
	case FieldPlayingField:
		return "Playing Field"
	case FieldTactics:
		return "Tactics"
	case FieldCapabilities:
		return "Capabilities Needed"
	case FieldManagementSystems:
		return "Management Systems"
	case FieldSuccessMeasures:
		return "Success Measures"
	}
	return "Unknown"
}

// Prompt is the label shown next to the input for this field.
func (f Field) Prompt() string {
	switch f {
	case FieldAspiration:
		return "Step 1: Winning Aspiration and Purpose"
	case FieldPlayingField:
		return "Step 2: Playing Field (Areas of Focus)"
	case FieldTactics:
		return "Step 3: Tactics to Win"
	case FieldCapabilities:
		return "Step 4: Capabilities Needed"
	case FieldManagementSystems:
		return "Step 5: Management Systems and Resources"
	case FieldSuccessMeasures:
		return "Step 6: What Success Looks Like (Measures)"
	}
	return "Unknown"
}

// Draft carries the six text fields entered through the form.
type Draft struct {
	Aspiration        string
	PlayingField      string
	Tactics           string
	Capabilities      string
	ManagementSystems string
	SuccessMeasures   string
}

// Value returns the text stored for field f.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldAspiration:
		return d.Aspiration
	case FieldPlayingField:
		return d.PlayingField
	case FieldTactics:
		return d.Tactics
	case FieldCapabilities:
		return d.Capabilities
	case FieldManagementSystems:
		return d.ManagementSystems
	case FieldSuccessMeasures:
		return d.SuccessMeasures
	}
	return ""
}

// Set stores value for field f.
func (d *Draft) Set(f Field, value string) {
	switch f {
	case FieldAspiration:
		d.Aspiration = value
	case FieldPlayingField:
		d.PlayingField = value
	case FieldTactics:
		d.Tactics = value
	case FieldCapabilities:
		d.Capabilities = value
	case FieldManagementSystems:
		d.ManagementSystems = value
	case FieldSuccessMeasures:
		d.SuccessMeasures = value
	}
}

// Complete reports whether every field holds a non-empty string.
// Whitespace counts as content.
func (d Draft) Complete() bool {
	for _, f := range Fields {
		if d.Value(f) == "" {
			return false
		}
	}
	return true
}

// Strategy is one plan entered at a given level.
type Strategy struct {
	ID        string
	Level     Level
	CreatedAt time.Time
	Draft
	Progress Progress
}

// Summary is a short single-line description used in journal entries.
func (s Strategy) Summary() string {
	return fmt.Sprintf("%s · %s", s.Level, s.Aspiration)
}
