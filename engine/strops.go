package engine

import "unicode/utf8"

// StrLength is the unary Str->Int operator: a per-example rune count,
// since Str is a unicode string value rather than a raw byte string.
var StrLength = NewBuilder1[Str, Int](
	"str.length",
	nil,
	func(arg []Str, _ Pointer, post Condition, b *Bank) (EvalResult[Int], bool) {
		out := make([]Int, len(arg))
		for i, s := range arg {
			out[i] = Int(utf8.RuneCountInString(string(s)))
		}
		return EvalResult[Int]{Values: out, Pointer: NoPointer}, true
	},
	func(arg string) string { return arg + ".length" },
)

// StrConcat is the binary Str+Str->Str operator.
var StrConcat = NewBuilder2[Str, Str, Str](
	"str.concat",
	func(lhs []Str, _ Pointer, rhs []Str, _ Pointer, post Condition, b *Bank) (EvalResult[Str], bool) {
		out := make([]Str, len(lhs))
		for i := range lhs {
			out[i] = lhs[i] + rhs[i]
		}
		return EvalResult[Str]{Values: out, Pointer: NoPointer}, true
	},
	func(lhs, rhs string) string { return lhs + " + " + rhs },
)
