package models

import (
	"fmt"
	"sort"
)

// FilterDescriptor binds a transform kind to concrete parameter values.
type FilterDescriptor struct {
	Kind       TransformKind
	Enabled    bool
	Params     ParameterSet
	OrderIndex int
}

// NewDescriptor creates an enabled descriptor with the kind's default parameters
func NewDescriptor(kind TransformKind, orderIndex int) (FilterDescriptor, error) {
	params, err := DefaultParams(kind)
	if err != nil {
		return FilterDescriptor{}, err
	}

	return FilterDescriptor{
		Kind:       kind,
		Enabled:    true,
		Params:     params,
		OrderIndex: orderIndex,
	}, nil
}

// Describe pairs params with their kind as an enabled descriptor
func Describe(params ParameterSet, orderIndex int) FilterDescriptor {
	return FilterDescriptor{
		Kind:       params.Kind(),
		Enabled:    true,
		Params:     params,
		OrderIndex: orderIndex,
	}
}

// Validate checks the kind, that the parameters belong to it, and their domains.
func (fd FilterDescriptor) Validate() error {
	if !fd.Kind.Valid() {
		return fmt.Errorf("%w: unknown filter kind %q", ErrInvalidParameter, fd.Kind)
	}

	if fd.Params == nil {
		return NewParameterError(fd.Kind, "parameters", nil, "parameters present")
	}

	if fd.Params.Kind() != fd.Kind {
		return NewParameterError(fd.Kind, "parameters", fd.Params.Kind(), "parameters of kind "+string(fd.Kind))
	}

	return fd.Params.Validate()
}

// Chain is an ordered sequence of descriptors. The order of the slice is
// the application order.
type Chain []FilterDescriptor

// DefaultChain returns every kind in panel order, disabled, with defaults.
func DefaultChain() Chain {
	chain := make(Chain, 0, len(Kinds))
	for i, kind := range Kinds {
		fd, _ := NewDescriptor(kind, i)
		fd.Enabled = false
		chain = append(chain, fd)
	}
	return chain
}

// Validate rejects duplicate order indices and invalid parameters on enabled
// descriptors. Disabled descriptors are never invoked, so their parameters
// are not checked.
func (c Chain) Validate() error {
	seen := make(map[int]int, len(c))
	for i, fd := range c {
		if prev, dup := seen[fd.OrderIndex]; dup {
			return fmt.Errorf("%w: filters %d and %d share order index %d", ErrInvalidParameter, prev, i, fd.OrderIndex)
		}
		seen[fd.OrderIndex] = i

		if !fd.Enabled {
			continue
		}

		if err := fd.Validate(); err != nil {
			if pe, ok := err.(*ParameterError); ok {
				attached := *pe
				attached.Index = i
				return &attached
			}
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	return nil
}

// Enabled returns the descriptors that will be applied, in order
func (c Chain) Enabled() Chain {
	enabled := make(Chain, 0, len(c))
	for _, fd := range c {
		if fd.Enabled {
			enabled = append(enabled, fd)
		}
	}
	return enabled
}

// Sorted returns a copy ordered by OrderIndex, for collaborators that keep
// descriptors in arbitrary order.
func (c Chain) Sorted() Chain {
	sorted := append(Chain(nil), c...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	return sorted
}

// Move returns a copy with the descriptor at from relocated to to, with
// order indices reassigned to match the new positions.
func (c Chain) Move(from, to int) (Chain, error) {
	if from < 0 || from >= len(c) || to < 0 || to >= len(c) {
		return nil, fmt.Errorf("index out of range: %d -> %d", from, to)
	}

	moved := append(Chain(nil), c...)
	fd := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append(Chain{fd}, moved[to:]...)...)

	for i := range moved {
		moved[i].OrderIndex = i
	}
	return moved, nil
}

// Kinds returns the kinds of the chain in order
func (c Chain) Kinds() []TransformKind {
	kinds := make([]TransformKind, len(c))
	for i, fd := range c {
		kinds[i] = fd.Kind
	}
	return kinds
}
