package capture

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ActionKind identifies one of the closed set of pre-capture
// interactions a task may describe.
type ActionKind string

const (
	// ActionClick clicks the element matching Selector
	ActionClick ActionKind = "click"

	// ActionScroll scrolls the page by DeltaX/DeltaY pixels
	ActionScroll ActionKind = "scroll"

	// ActionHover moves the pointer over the element matching Selector
	ActionHover ActionKind = "hover"

	// ActionInput fills the element matching Selector with Value
	ActionInput ActionKind = "input"

	// ActionWait waits for the element matching Selector to reach State
	ActionWait ActionKind = "wait"

	// ActionSequence performs Steps in order
	ActionSequence ActionKind = "sequence"
)

// Action is a tagged variant describing one pre-capture interaction.
// Each kind uses only the fields listed on its constant; Validate
// enforces that the kind-required ones are present.
type Action struct {
	Kind ActionKind `json:"kind" yaml:"kind"`

	// Selector for click, hover, input and wait
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	// Value for input
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// DeltaX and DeltaY for scroll, in pixels
	DeltaX int `json:"delta_x,omitempty" yaml:"delta_x,omitempty"`
	DeltaY int `json:"delta_y,omitempty" yaml:"delta_y,omitempty"`

	// State for wait: "attached", "detached", "visible" or "hidden".
	// Defaults to visible.
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Timeout for wait, in milliseconds (0 means driver default)
	Timeout float64 `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Steps for sequence
	Steps []Action `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// UnmarshalYAML decodes and validates an action so malformed task
// definitions are rejected at load time rather than mid-run.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	type plain Action
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}

	*a = Action(decoded)
	return a.Validate()
}

// Validate checks the kind is known and the fields its kind requires
// are present, recursing into sequence steps.
func (a *Action) Validate() error {
	switch a.Kind {
	case ActionClick, ActionHover:
		if a.Selector == "" {
			return fmt.Errorf("%s action requires a selector", a.Kind)
		}
	case ActionInput:
		if a.Selector == "" {
			return fmt.Errorf("input action requires a selector")
		}
		if a.Value == "" {
			return fmt.Errorf("input action requires a value")
		}
	case ActionScroll:
		if a.DeltaX == 0 && a.DeltaY == 0 {
			return fmt.Errorf("scroll action requires a non-zero delta")
		}
	case ActionWait:
		if a.Selector == "" {
			return fmt.Errorf("wait action requires a selector")
		}
		if a.State != "" && !validWaitState(a.State) {
			return fmt.Errorf("invalid wait state: %s (must be 'attached', 'detached', 'visible', or 'hidden')", a.State)
		}
	case ActionSequence:
		if len(a.Steps) == 0 {
			return fmt.Errorf("sequence action requires at least one step")
		}
		for i := range a.Steps {
			step := &a.Steps[i]
			if step.Kind == ActionSequence {
				return fmt.Errorf("sequence steps cannot be nested sequences")
			}
			if err := step.Validate(); err != nil {
				return fmt.Errorf("sequence step %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown action kind: %q", a.Kind)
	}

	return nil
}

func validWaitState(state string) bool {
	switch state {
	case "attached", "detached", "visible", "hidden":
		return true
	}
	return false
}
