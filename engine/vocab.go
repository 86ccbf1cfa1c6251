package engine

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EvalResult carries what a builder's Eval function computed for one
// candidate: the per-example values, an optional pending write to a
// variable (Mutation), and an optional Pointer marking the result itself
// as an L-value (used by postfix-increment, which both reads and denotes
// the mutated variable).
type EvalResult[O ValueType] struct {
	Values   []O
	Mutation *Mutation[O]
	Pointer  Pointer
}

// Builder is the type-erased surface the Vocabulary registry and the
// driver operate on. Concrete builders (Builder1, Builder2 below) are
// generic over their operand kinds; Builder lets a single ordered list
// hold builders of different arities and kinds side by side.
type Builder interface {
	Name() string
	MakeEnumerator(level int, max MaxSnapshot) Enumerator
}

// Builder1 is a unary operator builder: (I) -> O.
type Builder1[I, O ValueType] struct {
	name  string
	proof func([]I) bool // optional guard checked before eval; nil means always attempt
	eval  func(arg []I, argPtr Pointer, post Condition, b *Bank) (EvalResult[O], bool)
	code  func(arg string) string
}

// NewBuilder1 registers a unary operator. proof may be nil.
func NewBuilder1[I, O ValueType](
	name string,
	proof func([]I) bool,
	eval func(arg []I, argPtr Pointer, post Condition, b *Bank) (EvalResult[O], bool),
	code func(arg string) string,
) *Builder1[I, O] {
	return &Builder1[I, O]{name: name, proof: proof, eval: eval, code: code}
}

func (bd *Builder1[I, O]) Name() string { return bd.name }

func (bd *Builder1[I, O]) MakeEnumerator(level int, max MaxSnapshot) Enumerator {
	return &unaryEnumerator[I, O]{builder: bd, level: level, max: MaxFor[I](max)}
}

// Builder2 is a binary operator builder: (L, R) -> O.
type Builder2[L, R, O ValueType] struct {
	name string
	eval func(lhs []L, lhsPtr Pointer, rhs []R, rhsPtr Pointer, post Condition, b *Bank) (EvalResult[O], bool)
	code func(lhs, rhs string) string
}

// NewBuilder2 registers a binary operator.
func NewBuilder2[L, R, O ValueType](
	name string,
	eval func(lhs []L, lhsPtr Pointer, rhs []R, rhsPtr Pointer, post Condition, b *Bank) (EvalResult[O], bool),
	code func(lhs, rhs string) string,
) *Builder2[L, R, O] {
	return &Builder2[L, R, O]{name: name, eval: eval, code: code}
}

func (bd *Builder2[L, R, O]) Name() string { return bd.name }

func (bd *Builder2[L, R, O]) MakeEnumerator(level int, max MaxSnapshot) Enumerator {
	return &binaryEnumerator[L, R, O]{
		builder: bd,
		level:   level,
		maxL:    MaxFor[L](max),
		maxR:    MaxFor[R](max),
	}
}

// Vocabulary is an ordered registry of operator builders. Registration
// order is observable (it is part of the total order over admitted
// programs), so the registry is an insertion-ordered map, not a plain
// map.
type Vocabulary struct {
	builders *orderedmap.OrderedMap[string, Builder]
	ordered  []Builder // snapshot, rebuilt lazily by Ordered()
	dirty    bool
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{builders: orderedmap.New[string, Builder]()}
}

// Register appends b to the vocabulary. Registering a name twice replaces
// the earlier builder but keeps its original position, matching
// orderedmap.Set's semantics.
func (v *Vocabulary) Register(b Builder) {
	v.builders.Set(b.Name(), b)
	v.dirty = true
}

// Ordered returns the registered builders in registration order.
func (v *Vocabulary) Ordered() []Builder {
	if v.dirty || v.ordered == nil {
		v.ordered = v.ordered[:0]
		for pair := v.builders.Oldest(); pair != nil; pair = pair.Next() {
			v.ordered = append(v.ordered, pair.Value)
		}
		v.dirty = false
	}
	return v.ordered
}

// Len returns the number of registered builders.
func (v *Vocabulary) Len() int { return v.builders.Len() }

// IntConstant pairs a printed code form with a scalar Int value.
type IntConstant struct {
	Code  string
	Value Int
}

// StrConstant pairs a printed code form with a scalar Str value.
type StrConstant struct {
	Code  string
	Value Str
}

// DefaultIntConstants is the constant table ingested for Int at task
// start.
func DefaultIntConstants() []IntConstant {
	return []IntConstant{
		{Code: "0", Value: 0},
		{Code: "1", Value: 1},
	}
}

// DefaultStrConstants is the constant table ingested for Str at task
// start.
func DefaultStrConstants() []StrConstant {
	return []StrConstant{
		{Code: `""`, Value: ""},
		{Code: `" "`, Value: " "},
	}
}

// DefaultIntArrayConstant is the sole IntArray constant ("[]"), interned
// per-example as an empty slice.
func DefaultIntArrayConstant() (string, IntArray) {
	return "[]", IntArray{}
}
