package onboarding

import "strings"

// Step is one screen of the linear signup wizard.
type Step int

const (
	StepUsername Step = iota + 1
	StepLocation
	StepArts
	StepSkill
)

const lastStep = StepSkill

// Data accumulates the profile attributes collected across the four steps.
type Data struct {
	Username      string
	Location      string
	PreferredArts []string
	SkillLevel    string
}

// Clone returns an independent copy, so a handed-off Data cannot be mutated
// through the machine afterwards.
func (d Data) Clone() Data {
	arts := make([]string, len(d.PreferredArts))
	copy(arts, d.PreferredArts)
	d.PreferredArts = arts
	return d
}

// Machine is an immutable wizard state: every transition returns a new value.
// The zero Machine is not valid; use New.
type Machine struct {
	step      Step
	data      Data
	completed bool
}

func New() Machine {
	return Machine{step: StepUsername}
}

func (m Machine) Step() Step      { return m.step }
func (m Machine) Data() Data      { return m.data.Clone() }
func (m Machine) Completed() bool { return m.completed }

// StepValid reports whether the current step's gate holds.
func (m Machine) StepValid() bool {
	switch m.step {
	case StepUsername:
		return len(strings.TrimSpace(m.data.Username)) >= 3
	case StepLocation:
		return strings.TrimSpace(m.data.Location) != ""
	case StepArts:
		return len(m.data.PreferredArts) > 0
	case StepSkill:
		return m.data.SkillLevel != ""
	default:
		return false
	}
}

// Advance moves forward one step when the current gate holds; advancing from
// the final step marks the machine completed instead of adding a fifth step.
// An invalid step is a no-op.
func (m Machine) Advance() Machine {
	if !m.StepValid() || m.completed {
		return m
	}
	if m.step == lastStep {
		m.completed = true
		return m
	}
	m.step++
	return m
}

// Retreat moves back one step; retreating from step one is a no-op.
func (m Machine) Retreat() Machine {
	if m.step > StepUsername {
		m.step--
	}
	return m
}

// Field setters are permitted at any step so back-navigation edits work.

func (m Machine) SetUsername(username string) Machine {
	m.data.Username = username
	return m
}

func (m Machine) SetLocation(location string) Machine {
	m.data.Location = location
	return m
}

// ToggleArt adds the art when absent and removes it when present. Arts
// outside the catalog are ignored, so the selection never holds duplicates
// or unknown entries.
func (m Machine) ToggleArt(art string) Machine {
	if !knownArt(art) {
		return m
	}
	arts := m.data.PreferredArts
	for i, a := range arts {
		if a == art {
			next := make([]string, 0, len(arts)-1)
			next = append(next, arts[:i]...)
			next = append(next, arts[i+1:]...)
			m.data.PreferredArts = next
			return m
		}
	}
	next := make([]string, len(arts), len(arts)+1)
	copy(next, arts)
	m.data.PreferredArts = append(next, art)
	return m
}

func (m Machine) SetSkillLevel(value string) Machine {
	if !knownSkillLevel(value) {
		return m
	}
	m.data.SkillLevel = value
	return m
}
