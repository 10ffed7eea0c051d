package harness

// StepEvent records one applied step.
type StepEvent struct {
	Seq       int64          `json:"seq"`
	Namespace string         `json:"namespace"`
	Kind      string         `json:"kind"` // "params" or "return"
	Options   map[string]any `json:"options,omitempty"`
	Value     any            `json:"value,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace lists the applied steps in order.
	Trace []StepEvent `json:"trace"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`

	// Annotations is the final metadata as slot -> alias -> key -> value.
	Annotations map[string]any `json:"annotations"`

	// Digest fingerprints the final metadata independent of aliases.
	Digest string `json:"digest"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Trace:       []StepEvent{},
		Errors:      []string{},
		Annotations: map[string]any{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends a step to the trace.
func (r *Result) AddStep(event StepEvent) {
	r.Trace = append(r.Trace, event)
}
