package gamefuzz

import "fmt"

// Tally accumulates run-wide counters. One orchestrator run owns one tally;
// only its consuming loop mutates it, so no synchronization is involved.
type Tally struct {
	Started      int
	Finished     int
	Commands     int
	InvalidInput int
}

// Count applies one step to the counters. Fatal steps leave the tally
// untouched.
func (t *Tally) Count(step Step) {
	switch step.Kind {
	case StepCreated:
		t.Started++
	case StepFinished:
		t.Finished++
	case StepCommandOk:
		t.Commands++
	case StepUserError:
		t.Commands++
		t.InvalidInput++
	}
}

// Render formats the counters as a one-line status report.
func (t *Tally) Render() string {
	return fmt.Sprintf("Games started: %d   Games finished: %d   Commands: %d   Commands failed: %d",
		t.Started, t.Finished, t.Commands, t.InvalidInput)
}
