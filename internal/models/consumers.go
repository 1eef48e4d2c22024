package models

import "slices"

// ConsumerSet records who shares the cost of an item.
//
// It is either AllAtCreation, meaning everybody who was a participant when
// the item was added, or Explicit, a chosen subset. The creation-time
// snapshot is carried in both cases so the item keeps its history when
// participants come and go.
type ConsumerSet struct {
	atCreation []string
	explicit   []string
	chosen     bool
}

// AllAtCreation returns a set shared by every name in snapshot.
func AllAtCreation(snapshot []string) ConsumerSet {
	return ConsumerSet{atCreation: slices.Clone(snapshot)}
}

// Explicit returns a set restricted to names, keeping snapshot as history.
func Explicit(snapshot, names []string) ConsumerSet {
	return ConsumerSet{
		atCreation: slices.Clone(snapshot),
		explicit:   slices.Clone(names),
		chosen:     true,
	}
}

// IsExplicit reports whether a subset of consumers was chosen.
func (c ConsumerSet) IsExplicit() bool {
	return c.chosen
}

// AtCreation returns the participants present when the item was added.
func (c ConsumerSet) AtCreation() []string {
	return slices.Clone(c.atCreation)
}

// Chosen returns the explicit subset, or nil for AllAtCreation.
func (c ConsumerSet) Chosen() []string {
	if !c.chosen {
		return nil
	}
	return slices.Clone(c.explicit)
}

// Effective returns the names the item is divided among, in stored order.
func (c ConsumerSet) Effective() []string {
	if c.chosen {
		return slices.Clone(c.explicit)
	}
	return slices.Clone(c.atCreation)
}

// Contains reports whether name is one of the effective consumers.
func (c ConsumerSet) Contains(name string) bool {
	return slices.Contains(c.Effective(), name)
}

// without drops name from an explicit subset. Emptying the subset falls
// back to AllAtCreation, the state an empty assignedTo list encodes in a
// persisted record. The snapshot itself is never touched.
func (c ConsumerSet) without(name string) ConsumerSet {
	if !c.chosen {
		return c
	}
	remaining := slices.DeleteFunc(slices.Clone(c.explicit), func(n string) bool {
		return n == name
	})
	if len(remaining) == 0 {
		return AllAtCreation(c.atCreation)
	}
	return Explicit(c.atCreation, remaining)
}
