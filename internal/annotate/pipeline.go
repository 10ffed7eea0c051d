package annotate

import "slices"

// Pipeline is an ordered list of decorators applied to one target.
// A Pipeline is itself a Decorator, so pipelines nest.
type Pipeline struct {
	steps []Decorator
}

// NewPipeline returns a pipeline applying ds in the given order.
func NewPipeline(ds ...Decorator) *Pipeline {
	return &Pipeline{steps: slices.Clone(ds)}
}

// Stack returns a pipeline for decorators listed the way they would be
// stacked above a declaration: the last one listed is applied first.
func Stack(ds ...Decorator) *Pipeline {
	steps := slices.Clone(ds)
	slices.Reverse(steps)
	return &Pipeline{steps: steps}
}

// Then appends ds to the pipeline and returns it.
func (p *Pipeline) Then(ds ...Decorator) *Pipeline {
	p.steps = append(p.steps, ds...)
	return p
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Apply implements Decorator.
func (p *Pipeline) Apply(t Target) Target {
	return Decorate(t, p.steps...)
}
