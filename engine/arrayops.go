package engine

// ArrayPush is the binary IntArray,Int -> IntArray operator: it appends rhs
// to lhs and writes the grown array back to the variable lhs denotes.
// Only applicable when lhs is a bare variable.
var ArrayPush = NewBuilder2[IntArray, Int, IntArray](
	"array.push",
	func(lhs []IntArray, lhsPtr Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[IntArray], bool) {
		if lhsPtr == NoPointer {
			return EvalResult[IntArray]{}, false
		}

		out := make([]IntArray, len(lhs))
		for i := range lhs {
			grown := make(IntArray, len(lhs[i])+1)
			copy(grown, lhs[i])
			grown[len(lhs[i])] = rhs[i]
			out[i] = grown
		}

		return EvalResult[IntArray]{
			Values:   out,
			Mutation: &Mutation[IntArray]{Ptr: lhsPtr, Values: out},
			Pointer:  lhsPtr,
		}, true
	},
	func(lhs, rhs string) string { return lhs + ".push(" + rhs + ")" },
)

// ArrayIndex is the binary IntArray,Int -> Int operator. Out-of-bounds
// indexing on any example (negative, or past end) is undefined and prunes
// the whole candidate.
var ArrayIndex = NewBuilder2[IntArray, Int, Int](
	"array.index",
	func(lhs []IntArray, _ Pointer, rhs []Int, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(lhs))
		for i := range lhs {
			idx := int(rhs[i])
			if idx < 0 || idx >= len(lhs[i]) {
				return EvalResult[Int]{}, false
			}
			out[i] = lhs[i][idx]
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + "[" + rhs + "]" },
)

// ArrayLen is the unary IntArray -> Int operator.
var ArrayLen = NewBuilder1[IntArray, Int](
	"array.len",
	nil,
	func(arg []IntArray, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(arg))
		for i, a := range arg {
			out[i] = Int(len(a))
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(arg string) string { return arg + ".length" },
)
