package quote

import "errors"

// Step identifies one stage of the quotation workflow. The machine is
// closed: form -> calculation -> summary, with explicit back transitions
// calculation -> form and summary -> calculation. Everything else is
// rejected.
type Step string

const (
	StepForm        Step = "form"
	StepCalculation Step = "calculation"
	StepSummary     Step = "summary"
)

// ErrInvalidTransition is returned when a step change outside the allowed
// edges is requested.
var ErrInvalidTransition = errors.New("invalid workflow transition")

var transitions = map[Step][]Step{
	StepForm:        {StepCalculation},
	StepCalculation: {StepSummary, StepForm},
	StepSummary:     {StepCalculation},
}

// Valid reports whether the step is a known workflow stage.
func (s Step) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from s to target is allowed.
func (s Step) CanTransition(target Step) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
