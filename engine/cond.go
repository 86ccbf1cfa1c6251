package engine

import "slices"

// AnyValIndex is a kind-tagged value-index: it identifies the concrete
// per-example values a variable is symbolically bound to, without fixing
// the kind at compile time. It is what a Condition slot holds when bound.
type AnyValIndex struct {
	Kind   Kind
	Offset int
}

// CondSlot is one slot of a Condition: either unbound (the zero value) or
// bound to an AnyValIndex. It is a small comparable struct so that
// Condition itself stays comparable via slices.Equal, which is what makes
// the OE key cheap (see bank.go).
type CondSlot struct {
	Bound  bool
	Kind   Kind
	Offset int
}

func boundSlot(v AnyValIndex) CondSlot {
	return CondSlot{Bound: true, Kind: v.Kind, Offset: v.Offset}
}

// Condition is a fixed-length ordered sequence of per-variable symbolic
// bindings, one slot per entry in the task's variable map. The variable
// count is fixed once at task start, so a flat slice suffices.
type Condition struct {
	Slots []CondSlot
}

// EmptyCondition returns a Condition with all n slots unbound.
func EmptyCondition(n int) Condition {
	return Condition{Slots: make([]CondSlot, n)}
}

// Get returns the binding at ptr, if any.
func (c Condition) Get(ptr Pointer) (AnyValIndex, bool) {
	s := c.Slots[ptr]
	if !s.Bound {
		return AnyValIndex{}, false
	}
	return AnyValIndex{Kind: s.Kind, Offset: s.Offset}, true
}

// Mutate returns a copy of c with slot ptr replaced by v (or cleared, if v
// is nil). Condition is a value type: this never mutates c in place.
func (c Condition) Mutate(ptr Pointer, v *AnyValIndex) Condition {
	slots := slices.Clone(c.Slots)
	if v == nil {
		slots[ptr] = CondSlot{}
	} else {
		slots[ptr] = boundSlot(*v)
	}
	return Condition{Slots: slots}
}

// Equal reports whether two conditions carry the same bindings.
func (c Condition) Equal(other Condition) bool {
	return slices.Equal(c.Slots, other.Slots)
}

// Implies reports whether a is compatible with b: for every slot, if both
// a and b are bound, they must be bound to the same value-index. A slot
// bound in one and unbound in the other is never a contradiction.
func Implies(a, b Condition) bool {
	n := len(a.Slots)
	if len(b.Slots) != n {
		return false
	}
	for i := 0; i < n; i++ {
		as, bs := a.Slots[i], b.Slots[i]
		if as.Bound && bs.Bound && as != bs {
			return false
		}
	}
	return true
}

// Sequence composes two sub-expressions' conditions via the Hoare
// sequencing rule. It fails (ok=false) when the first sub-expression's
// post-condition contradicts the second's pre-condition.
//
// Post slots fall back: post2 wins when it touches the slot, otherwise
// post1's write survives. Taking post2 unconditionally would clear an
// earlier write whenever the second sub-expression leaves the slot
// untouched.
func Sequence(pre1, post1, pre2, post2 Condition) (pre, post Condition, ok bool) {
	if !Implies(post1, pre2) {
		return Condition{}, Condition{}, false
	}

	n := len(pre1.Slots)
	preSlots := make([]CondSlot, n)
	postSlots := make([]CondSlot, n)
	for i := 0; i < n; i++ {
		switch {
		case post1.Slots[i].Bound:
			preSlots[i] = pre1.Slots[i]
		case pre1.Slots[i].Bound:
			preSlots[i] = pre1.Slots[i]
		default:
			preSlots[i] = pre2.Slots[i]
		}

		if post2.Slots[i].Bound {
			postSlots[i] = post2.Slots[i]
		} else {
			postSlots[i] = post1.Slots[i]
		}
	}

	return Condition{Slots: preSlots}, Condition{Slots: postSlots}, true
}
