package onboarding

import "testing"

func completeWizard(w *Wizard) {
	w.SetUsername("iron_fist_23")
	w.Next()
	w.SetLocation("New York, NY")
	w.Next()
	w.ToggleArt("Boxing")
	w.ToggleArt("MMA")
	w.Next()
	w.SetSkillLevel("advanced")
	w.Next()
}

func TestWizardCompletionFiresOnceWithFrozenData(t *testing.T) {
	var calls int
	var got Data
	w := NewWizard(func(d Data) {
		calls++
		got = d
	})

	completeWizard(w)

	if calls != 1 {
		t.Fatalf("expected exactly one completion, got %d", calls)
	}
	if got.Username != "iron_fist_23" || got.Location != "New York, NY" || got.SkillLevel != "advanced" {
		t.Fatalf("unexpected completion data: %+v", got)
	}
	if len(got.PreferredArts) != 2 || got.PreferredArts[0] != "Boxing" || got.PreferredArts[1] != "MMA" {
		t.Fatalf("unexpected arts: %v", got.PreferredArts)
	}

	// further edits after hand-off must not reach the frozen copy
	w.ToggleArt("Boxing")
	if len(got.PreferredArts) != 2 {
		t.Fatalf("handed-off data mutated after completion")
	}

	// nor may repeated Next calls fire again
	w.Next()
	if calls != 1 {
		t.Fatalf("completion fired more than once")
	}
}

func TestWizardInvalidNextIsNoOp(t *testing.T) {
	w := NewWizard(func(Data) { t.Fatalf("unexpected completion") })
	w.SetUsername("ab")
	w.Next()
	if w.Step() != StepUsername {
		t.Fatalf("invalid next advanced the wizard")
	}
	if w.StepValid() {
		t.Fatalf("step 1 must be invalid with a 2-char username")
	}
}

func TestWizardPreviousAtStepOneIsNoOp(t *testing.T) {
	w := NewWizard(nil)
	w.Previous()
	if w.Step() != StepUsername {
		t.Fatalf("previous at step 1 moved the wizard")
	}
}

func TestWizardNilCallback(t *testing.T) {
	w := NewWizard(nil)
	completeWizard(w) // must not panic
}
