package onboarding

// Wizard wraps a Machine with the completion callback the UI hands in.
// The callback fires exactly once, with a frozen copy of the collected data.
type Wizard struct {
	machine    Machine
	onComplete func(Data)
	fired      bool
}

func NewWizard(onComplete func(Data)) *Wizard {
	return &Wizard{machine: New(), onComplete: onComplete}
}

func (w *Wizard) Step() Step      { return w.machine.Step() }
func (w *Wizard) Data() Data      { return w.machine.Data() }
func (w *Wizard) StepValid() bool { return w.machine.StepValid() }
func (w *Wizard) Completed() bool { return w.machine.Completed() }

// Next advances when the current step is valid. Completing the final step
// invokes the callback instead of transitioning to a fifth state.
func (w *Wizard) Next() {
	w.machine = w.machine.Advance()
	if w.machine.Completed() && !w.fired {
		w.fired = true
		if w.onComplete != nil {
			w.onComplete(w.machine.Data())
		}
	}
}

func (w *Wizard) Previous() {
	w.machine = w.machine.Retreat()
}

func (w *Wizard) SetUsername(username string) { w.machine = w.machine.SetUsername(username) }
func (w *Wizard) SetLocation(location string) { w.machine = w.machine.SetLocation(location) }
func (w *Wizard) ToggleArt(art string)        { w.machine = w.machine.ToggleArt(art) }
func (w *Wizard) SetSkillLevel(value string)  { w.machine = w.machine.SetSkillLevel(value) }
