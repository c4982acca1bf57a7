package chartsense

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScript is returned for scripts that cannot be parsed or contain
// unknown actions.
var ErrInvalidScript = errors.New("chartsense: invalid script")

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	Key    string  `json:"key,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Touch  bool    `json:"touch,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Snapshot is the state captured by a "snapshot" step.
type Snapshot struct {
	Label        string
	Step         int
	Status       Status
	Interactions map[string]*InteractionPayload
}

// Script replays a sequence of synthetic input against a mounted chart.
// Actions: move, press, leave, key, sweep, resize, snapshot.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON interaction script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "press", "leave", "sweep", "resize", "snapshot":
		case "key":
			if ParseKey(st.Key) == KeyUnknown {
				return nil, fmt.Errorf("%w: step %d: unknown key %q", ErrInvalidScript, i, st.Key)
			}
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

// Run executes every step against c, which must be mounted. observe receives
// each snapshot; it may be nil.
func (s *Script) Run(c *Chart, observe func(Snapshot)) {
	for i, st := range s.steps {
		switch st.Action {
		case "move":
			if st.Touch {
				c.InjectTouch(st.X, st.Y)
			} else {
				c.InjectMove(st.X, st.Y)
			}
		case "press":
			c.InjectPress(st.X, st.Y)
		case "leave":
			c.InjectLeave()
		case "key":
			c.InjectKey(ParseKey(st.Key))
		case "sweep":
			c.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Steps)
		case "resize":
			c.Resize(st.Width, st.Height)
		case "snapshot":
			if observe == nil {
				continue
			}
			cur := c.State()
			observe(Snapshot{
				Label:        st.Label,
				Step:         i,
				Status:       cur.Status,
				Interactions: cur.Interactions,
			})
		}
	}
}

// ParseKey maps DOM-style key names to Key.
func ParseKey(name string) Key {
	switch name {
	case "ArrowLeft", "Left":
		return KeyArrowLeft
	case "ArrowRight", "Right":
		return KeyArrowRight
	case "ArrowUp", "Up":
		return KeyArrowUp
	case "ArrowDown", "Down":
		return KeyArrowDown
	case "Home":
		return KeyHome
	case "End":
		return KeyEnd
	case "Escape", "Esc":
		return KeyEscape
	}
	return KeyUnknown
}
