// SPDX-License-Identifier: MIT

package integrand

import (
	"fmt"
	"sort"
)

// Registry maps integer IDs to integrands.
//
// A Registry is populated once and then only read; it performs no locking,
// so Register must not race with Lookup.
type Registry struct {
	byID map[int]Integrand
}

// NewRegistry returns a registry holding the given integrands.
// It fails on the first duplicate ID or nil evaluator.
func NewRegistry(items ...Integrand) (*Registry, error) {
	r := &Registry{byID: make(map[int]Integrand, len(items))}
	for _, it := range items {
		if err := r.Register(it); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds in to the registry.
func (r *Registry) Register(in Integrand) error {
	if in.Fn == nil {
		return fmt.Errorf("register #%d: %w", in.ID, ErrNilFunc)
	}
	if _, dup := r.byID[in.ID]; dup {
		return fmt.Errorf("register #%d: %w", in.ID, ErrDuplicateID)
	}
	r.byID[in.ID] = in

	return nil
}

// Lookup returns the integrand registered under id, or ErrIntegrandNotFound.
func (r *Registry) Lookup(id int) (Integrand, error) {
	in, ok := r.byID[id]
	if !ok {
		return Integrand{}, fmt.Errorf("lookup #%d: %w", id, ErrIntegrandNotFound)
	}

	return in, nil
}

// All returns every registered integrand sorted by ID.
func (r *Registry) All() []Integrand {
	out := make([]Integrand, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Len returns the number of registered integrands.
func (r *Registry) Len() int {
	return len(r.byID)
}
