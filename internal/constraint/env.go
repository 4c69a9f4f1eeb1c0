package constraint

import (
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/visit"
)

// InferenceEnvironment accumulates constraints emitted by
// CollectConstraints/CollectDependencies over the lifetime of one
// elaboration pass.
type InferenceEnvironment struct {
	*env.Environment
	buffer []Constraint
	visits *visit.Set
}

// NewInferenceEnvironment constructs an empty InferenceEnvironment.
func NewInferenceEnvironment(e *env.Environment) *InferenceEnvironment {
	return &InferenceEnvironment{Environment: e, visits: visit.NewSet()}
}

// push appends a constraint to the buffer.
func (ie *InferenceEnvironment) push(c Constraint) {
	ie.buffer = append(ie.buffer, c)
}

// TakeConstraints drains and returns all constraints accumulated so
// far, resetting the buffer to empty.
func (ie *InferenceEnvironment) TakeConstraints() []Constraint {
	out := ie.buffer
	ie.buffer = nil
	return out
}
