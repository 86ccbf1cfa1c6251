package engine

// StepResult is the three-way signal an Enumerator gives back on each
// call to Step: a freshly admitted program, "nothing this time, ask
// again", or "this (builder, level) pair is exhausted".
type StepResult int

const (
	StepSome StepResult = iota
	StepNone
	StepDone
)

// Enumerator produces MaybeProgram candidates for one (builder, level)
// pair, composing them from programs already in the bank and submitting
// each to Bank.PutProgram for OE deduplication. One Enumerator is live at
// a time per operator/level pair.
type Enumerator interface {
	Step(b *Bank) (AnyProg, StepResult)
}

// unaryEnumerator iterates the pre-level-L prefix of kind I's program
// arena (bounded by max, a MaxSnapshot taken at construction time),
// looking for children at level L-1.
type unaryEnumerator[I, O ValueType] struct {
	builder *Builder1[I, O]
	level   int
	idx     int
	max     int
}

func (e *unaryEnumerator[I, O]) Step(b *Bank) (AnyProg, StepResult) {
	if e.idx >= e.max {
		return AnyProg{}, StepDone
	}

	childIdx := ProgIndex[I]{pos: e.idx}
	e.idx++

	child := GetProgram[I](b, childIdx)
	if child.Level != e.level-1 {
		return AnyProg{}, StepNone
	}

	argValues := GetValues[I](b, child.Values)
	if e.builder.proof != nil && !e.builder.proof(argValues) {
		return AnyProg{}, StepNone
	}

	res, ok := e.builder.eval(argValues, child.Pointer, child.Post, b)
	if !ok {
		return AnyProg{}, StepNone
	}

	post := child.Post
	if res.Mutation != nil {
		post = applyMutation(b, nameForPointer(b, res.Mutation.Ptr), *res.Mutation, post)
	}

	code := e.builder.code
	mp := &MaybeProgram[O]{
		Values:  res.Values,
		Code:    func(bk *Bank) string { return code(GetProgram[I](bk, childIdx).Code(bk)) },
		Pointer: res.Pointer,
		Pre:     child.Pre,
		Post:    post,
		Level:   e.level,
	}

	idx, admitted := PutProgram(b, mp)
	if !admitted {
		return AnyProg{}, StepNone
	}
	return TagProgIndex(idx), StepSome
}

// binaryEnumerator iterates the cartesian product of the pre-level-L
// prefixes of kinds L and R, bounded by max: rhs advances to max.rhs
// before lhs advances, and Done fires only once lhs itself overflows
// max.lhs.
type binaryEnumerator[L, R, O ValueType] struct {
	builder *Builder2[L, R, O]
	level   int
	lhsIdx  int
	rhsIdx  int
	maxL    int
	maxR    int
}

func (e *binaryEnumerator[L, R, O]) Step(b *Bank) (AnyProg, StepResult) {
	if e.maxL == 0 || e.maxR == 0 {
		return AnyProg{}, StepDone
	}

	if e.rhsIdx >= e.maxR {
		e.lhsIdx++
		if e.lhsIdx >= e.maxL {
			return AnyProg{}, StepDone
		}
		e.rhsIdx = 0
	}

	lhsIdx := ProgIndex[L]{pos: e.lhsIdx}
	rhsIdx := ProgIndex[R]{pos: e.rhsIdx}
	e.rhsIdx++

	lhs := GetProgram[L](b, lhsIdx)
	rhs := GetProgram[R](b, rhsIdx)

	childLevel := lhs.Level
	if rhs.Level > childLevel {
		childLevel = rhs.Level
	}
	if childLevel+1 != e.level {
		return AnyProg{}, StepNone
	}

	pre, post, ok := Sequence(lhs.Pre, lhs.Post, rhs.Pre, rhs.Post)
	if !ok {
		return AnyProg{}, StepNone
	}

	lhsValues := GetValues[L](b, lhs.Values)
	rhsValues := GetValues[R](b, rhs.Values)

	res, ok := e.builder.eval(lhsValues, lhs.Pointer, rhsValues, rhs.Pointer, post, b)
	if !ok {
		return AnyProg{}, StepNone
	}

	if res.Mutation != nil {
		post = applyMutation(b, nameForPointer(b, res.Mutation.Ptr), *res.Mutation, post)
	}

	code := e.builder.code
	mp := &MaybeProgram[O]{
		Values: res.Values,
		Code: func(bk *Bank) string {
			return code(GetProgram[L](bk, lhsIdx).Code(bk), GetProgram[R](bk, rhsIdx).Code(bk))
		},
		Pointer: res.Pointer,
		Pre:     pre,
		Post:    post,
		Level:   e.level,
	}

	idx, admitted := PutProgram(b, mp)
	if !admitted {
		return AnyProg{}, StepNone
	}
	return TagProgIndex(idx), StepSome
}

// applyMutation interns m's values as a fresh variable-binding of the
// variable at m.Ptr and returns post with that slot rebound.
func applyMutation[T ValueType](b *Bank, name string, m Mutation[T], post Condition) Condition {
	idx, _ := PutVariable(b, name, m.Values, m.Ptr)
	prog := GetProgram[T](b, idx)
	av := AnyValIndex{Kind: KindOf[T](), Offset: prog.Values.offset}
	return post.Mutate(m.Ptr, &av)
}

func nameForPointer(b *Bank, ptr Pointer) string {
	return b.Vars[ptr]
}
