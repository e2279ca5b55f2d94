package resolver

import (
	"fmt"
	"slices"

	"onsightnow/internal/recordstore"
	dErrors "onsightnow/pkg/domain-errors"
)

// Selector is the extraction rule of one step. The set is closed:
// SelectSpec and ExpandSpec are the only implementations.
type Selector interface {
	query() recordstore.Query
	// extract reads the step's output from the fetched record. fallback is true
	// when the rule could not apply and the record itself is the output.
	extract(rec recordstore.Record, q recordstore.Query) (value any, fallback bool)
	validate() error
}

// SelectSpec reads a single scalar field off the fetched record.
type SelectSpec struct {
	Field string
}

func (s SelectSpec) query() recordstore.Query {
	return recordstore.Query{Select: s.Field}
}

func (s SelectSpec) extract(rec recordstore.Record, _ recordstore.Query) (any, bool) {
	return rec[s.Field], false
}

func (s SelectSpec) validate() error {
	if s.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "select step requires a field")
	}
	return nil
}

func (s SelectSpec) String() string { return "$select=" + s.Field }

// ExpandSpec fetches a related collection and reads Field from its first element.
type ExpandSpec struct {
	Collection string
	Field      string
}

// Expand builds an ExpandSpec from a Web API expand option such as
// "bookings($select=bookingid)".
func Expand(expr string) (ExpandSpec, error) {
	collection, field, ok := recordstore.ParseExpand(expr)
	if !ok {
		return ExpandSpec{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid expand expression %q", expr))
	}
	return ExpandSpec{Collection: collection, Field: field}, nil
}

// MustExpand is Expand for package-level declarations.
func MustExpand(expr string) ExpandSpec {
	spec, err := Expand(expr)
	if err != nil {
		panic(err)
	}
	return spec
}

func (s ExpandSpec) query() recordstore.Query {
	return recordstore.Query{Expand: recordstore.FormatExpand(s.Collection, s.Field)}
}

// extract parses collection and field back out of the expand option that was
// sent, so the response is always read under the name it was requested by.
// An empty or absent collection yields the record itself.
func (s ExpandSpec) extract(rec recordstore.Record, q recordstore.Query) (any, bool) {
	collection, field, ok := recordstore.ParseExpand(q.Expand)
	if !ok {
		return rec, true
	}
	items, ok := recordstore.RelatedItems(rec[collection])
	if !ok || len(items) == 0 {
		return rec, true
	}
	return items[0][field], false
}

func (s ExpandSpec) validate() error {
	if s.Collection == "" || s.Field == "" {
		return dErrors.New(dErrors.CodeValidation, "expand step requires a collection and a field")
	}
	return nil
}

func (s ExpandSpec) String() string { return "$expand=" + recordstore.FormatExpand(s.Collection, s.Field) }

// Step fetches one record of EntityType and extracts the next step's input.
type Step struct {
	EntityType string
	Selector   Selector
}

// Chain is an ordered, non-empty sequence of steps. The output of step i is
// the record id consumed by step i+1; the last step yields the leaf value.
type Chain []Step

// NewChain validates and returns a chain made of steps.
func NewChain(steps ...Step) (Chain, error) {
	c := Chain(slices.Clone(steps))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func mustChain(steps ...Step) Chain {
	c, err := NewChain(steps...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the chain is non-empty and every step is well formed.
func (c Chain) Validate() error {
	if len(c) == 0 {
		return dErrors.New(dErrors.CodeValidation, "resolution chain is empty")
	}
	for i, step := range c {
		if step.EntityType == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("step %d has no entity type", i))
		}
		if step.Selector == nil {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("step %d has no selector", i))
		}
		if err := step.Selector.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Then returns a new chain of c followed by next. Neither input is modified.
func (c Chain) Then(next Chain) Chain {
	out := make(Chain, 0, len(c)+len(next))
	out = append(out, c...)
	return append(out, next...)
}
