package photobooth

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultStickerSize is the drop size used when a script step gives none.
const DefaultStickerSize = 80

// scriptStep is a single action in a composition script.
type scriptStep struct {
	Action  string  `yaml:"action" json:"action"`
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Photos  int     `yaml:"photos,omitempty" json:"photos,omitempty"`
	Sticker string  `yaml:"sticker,omitempty" json:"sticker,omitempty"`
	Size    float64 `yaml:"size,omitempty" json:"size,omitempty"`
	X       float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty" json:"y,omitempty"`
	FromX   float64 `yaml:"fromX,omitempty" json:"fromX,omitempty"`
	FromY   float64 `yaml:"fromY,omitempty" json:"fromY,omitempty"`
	ToX     float64 `yaml:"toX,omitempty" json:"toX,omitempty"`
	ToY     float64 `yaml:"toY,omitempty" json:"toY,omitempty"`
	Frames  int     `yaml:"frames,omitempty" json:"frames,omitempty"`
	Seconds float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`
}

// scriptFile is the top-level structure of a composition script.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps" json:"steps"`
}

// LabeledExport is an export produced by a script step.
type LabeledExport struct {
	Label  string
	Result ExportResult
}

// Script sequences sessions, waits, pointer input, frame toggles and exports
// against a Booth, one step per update. It drives the headless compose
// command and end-to-end tests.
type Script struct {
	steps   []scriptStep
	cursor  int
	wait    time.Duration
	capture bool
	done    bool
	exports []LabeledExport
}

// LoadScript parses a YAML or JSON script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "session", "wait", "capture", "drop", "click", "drag", "leave", "frame", "export":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// Exports returns the exports produced so far, in step order.
func (r *Script) Exports() []LabeledExport {
	return r.exports
}

// Step advances the script by one update of dt. Call it before Booth.Update.
func (r *Script) Step(b *Booth, dt time.Duration) error {
	if r.done {
		return nil
	}
	// Let injected input and sticker loads drain before the next step.
	if len(b.injectQueue) > 0 || b.ctl.PendingDrops() > 0 {
		return nil
	}
	if r.wait > 0 {
		r.wait -= dt
		return nil
	}
	if r.capture {
		if b.seq.Running() {
			return nil
		}
		r.capture = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "session":
		if err := b.StartSession(st.Photos); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
	case "wait":
		r.wait = time.Duration(st.Seconds * float64(time.Second))
	case "capture":
		r.capture = true
	case "drop":
		size := st.Size
		if size <= 0 {
			size = DefaultStickerSize
		}
		b.InjectDrop(st.Sticker, size, st.X, st.Y)
	case "click":
		b.InjectClick(st.X, st.Y)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		b.InjectLeave()
	case "frame":
		b.ToggleFrame()
	case "export":
		res, err := b.Export()
		if err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
		r.exports = append(r.exports, LabeledExport{Label: st.Label, Result: res})
	}
	return nil
}

// RunScript drives b with script using simulated time, dt per update, until
// every step has run. Decodes are settled before each step so exports see
// every captured photo and dropped sticker.
func RunScript(ctx context.Context, b *Booth, script *Script, dt time.Duration) error {
	if dt <= 0 {
		return fmt.Errorf("run script: step duration must be positive, got %v", dt)
	}
	for !script.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if b.loader.Pending() > 0 {
			if err := b.Settle(ctx); err != nil {
				return err
			}
		}
		if err := script.Step(b, dt); err != nil {
			return err
		}
		b.Update(dt)
	}
	return b.Settle(ctx)
}
