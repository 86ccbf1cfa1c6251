package engine

// IntAdd is the binary Int+Int->Int operator. An overflowing example
// prunes the whole candidate rather than wrapping.
var IntAdd = NewBuilder2[Int, Int, Int](
	"int.add",
	func(lhs []Int, _ Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(lhs))
		for i := range lhs {
			sum, ok := AddChecked(lhs[i], rhs[i])
			if !ok {
				return EvalResult[Int]{}, false
			}
			out[i] = sum
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + " + " + rhs },
)

// IntSub is the binary Int-Int->Int operator.
var IntSub = NewBuilder2[Int, Int, Int](
	"int.sub",
	func(lhs []Int, _ Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(lhs))
		for i := range lhs {
			diff, ok := SubChecked(lhs[i], rhs[i])
			if !ok {
				return EvalResult[Int]{}, false
			}
			out[i] = diff
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + " - " + rhs },
)

// IntMul is the binary Int*Int->Int operator.
var IntMul = NewBuilder2[Int, Int, Int](
	"int.mul",
	func(lhs []Int, _ Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(lhs))
		for i := range lhs {
			prod, ok := MulChecked(lhs[i], rhs[i])
			if !ok {
				return EvalResult[Int]{}, false
			}
			out[i] = prod
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + " * " + rhs },
)

// IntPow is the binary Int**Int->Int operator. A negative exponent is
// undefined over Int and prunes the candidate, as does an overflowing
// result.
var IntPow = NewBuilder2[Int, Int, Int](
	"int.pow",
	func(lhs []Int, _ Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(lhs))
		for i := range lhs {
			p, ok := PowChecked(lhs[i], rhs[i])
			if !ok {
				return EvalResult[Int]{}, false
			}
			out[i] = p
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + " ** " + rhs },
)

// IntPostfixInc is the unary postfix-increment operator: it reads the
// argument's current value (the expression's own value) and emits a
// Mutation writing argument+1 back into the variable slot the argument
// denotes.
// Only applicable when the argument is itself a bare variable (argPtr !=
// NoPointer); anything else is rejected at eval time since there is
// nothing to write the mutation back to.
var IntPostfixInc = NewBuilder1[Int, Int](
	"int.postfix_inc",
	nil,
	func(arg []Int, argPtr Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		if argPtr == NoPointer {
			return EvalResult[Int]{}, false
		}

		old := make([]Int, len(arg))
		next := make([]Int, len(arg))
		for i := range arg {
			old[i] = arg[i]
			n, ok := AddChecked(arg[i], 1)
			if !ok {
				return EvalResult[Int]{}, false
			}
			next[i] = n
		}

		return EvalResult[Int]{
			Values:   old,
			Mutation: &Mutation[Int]{Ptr: argPtr, Values: next},
			Pointer:  argPtr,
		}, true
	},
	func(arg string) string { return arg + "++" },
)
