package engine

// ValueIndex addresses a length-E span in the per-kind value arena. It is
// phantom-typed by value kind so a ValueIndex[Int] can never be used to
// address a Str's values.
type ValueIndex[T ValueType] struct {
	offset int
}

// ProgIndex is a program's position in the per-kind program arena.
type ProgIndex[T ValueType] struct {
	pos int
}

// AnyProg is a kind-tagged ProgIndex, used wherever the driver or
// enumerator hands a freshly admitted program back across kind
// boundaries.
type AnyProg struct {
	Kind Kind
	Pos  int
}

// TagProgIndex erases a ProgIndex[T]'s type parameter into an AnyProg.
func TagProgIndex[T ValueType](idx ProgIndex[T]) AnyProg {
	return AnyProg{Kind: KindOf[T](), Pos: idx.pos}
}

// CodeFunc renders a program's source text. Composite programs' CodeFunc
// recursively asks the bank for each child's code and applies a printer;
// leaves just return a fixed string.
type CodeFunc func(b *Bank) string

// Program is the admitted form of a candidate: a value kind, a structural
// size (Level), a value-index giving its per-example results, a code
// printer, an optional Pointer (present for a bare variable reference, and
// for results an operator reports as an L-value, such as x++ or
// arr.push(v)), and a (pre, post) condition pair.
//
// The four node shapes (variable, constant, unary, binary) are not
// distinct Go types; they are distinguished only by how
// Values/Code/Pointer/Pre/Post were populated when the Program was built
// (see PutVariable, PutConstant, and the unary/binary enumerators).
type Program[T ValueType] struct {
	Level   int
	Values  ValueIndex[T]
	Code    CodeFunc
	Pointer Pointer
	Pre     Condition
	Post    Condition
}

// IsLeaf reports whether this program is a variable or constant.
func (p *Program[T]) IsLeaf() bool { return p.Level == 0 }

// Mutation describes a pending write of new per-example values to a
// variable slot, produced by operators with side effects (array push,
// postfix increment). It is applied by interning
// Values as a fresh variable-binding of the variable at Ptr and mutating
// the post-condition to point at it.
type Mutation[T ValueType] struct {
	Ptr    Pointer
	Values []T
}

// MaybeProgram is a not-yet-admitted candidate: an enumerator builds one,
// evaluating raw values across every example, and submits it to the bank
// for observational-equivalence deduplication. Bank.PutProgram either
// admits it (interning Values into the arena and returning a new
// ProgIndex) or rejects it as OE-equivalent to something already stored.
type MaybeProgram[T ValueType] struct {
	Values  []T
	Code    CodeFunc
	Pointer Pointer
	Pre     Condition
	Post    Condition
	Level   int
}

// intoProgram materializes the admitted Program once the bank has decided
// where in the value arena Values lives.
func (mp *MaybeProgram[T]) intoProgram(vidx ValueIndex[T]) Program[T] {
	return Program[T]{
		Level:   mp.Level,
		Values:  vidx,
		Code:    mp.Code,
		Pointer: mp.Pointer,
		Pre:     mp.Pre,
		Post:    mp.Post,
	}
}
