package engine

import (
	"encoding/binary"
	"io"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/crypto/blake2b"
)

// oeHash is the bucket key for the observational-equivalence index: a
// blake2b-256 digest of a candidate's (values, pointer, pre, post) tuple.
// Collisions are resolved by the exact-equality fallback in PutProgram.
type oeHash [32]byte

// arena is the per-kind append-only store for both program nodes and the
// contiguous per-example value tuples they reference, plus the OE index
// that guards admission. One arena[T] exists per supported ValueType.
//
// The OE bucket table is insertion-ordered so that bucket iteration, and
// anything that walks the whole index, is reproducible across runs.
type arena[T ValueType] struct {
	values []T
	progs  []Program[T]
	byName map[string][]int // variable name -> candidate program positions, for put_variable's (name, values) dedup
	oe     *orderedmap.OrderedMap[oeHash, []int]
}

func newArena[T ValueType]() *arena[T] {
	return &arena[T]{
		byName: make(map[string][]int),
		oe:     orderedmap.New[oeHash, []int](),
	}
}

func (a *arena[T]) putValues(vals []T) ValueIndex[T] {
	offset := len(a.values)
	a.values = append(a.values, vals...)
	return ValueIndex[T]{offset: offset}
}

func (a *arena[T]) values_(e int, vi ValueIndex[T]) []T {
	return a.values[vi.offset : vi.offset+e]
}

// Bank is the typed program/value store. Arenas grow monotonically;
// nothing is ever removed. The Bank exclusively owns all admitted
// programs; they refer to each other only by ProgIndex, never by pointer,
// so the result is a DAG with no cycles by construction (every
// composite's children were admitted strictly earlier).
type Bank struct {
	E    int
	Vars []string

	ints   *arena[Int]
	strs   *arena[Str]
	arrays *arena[IntArray]
}

// NewBank creates a Bank for a task with the given example count and
// ordered variable names. A variable's position in vars is its Pointer.
func NewBank(exampleCount int, vars []string) *Bank {
	return &Bank{
		E:      exampleCount,
		Vars:   append([]string(nil), vars...),
		ints:   newArena[Int](),
		strs:   newArena[Str](),
		arrays: newArena[IntArray](),
	}
}

// bankArena returns the arena backing kind T, selected once here rather
// than by a reflective switch scattered through callers.
func bankArena[T ValueType](b *Bank) *arena[T] {
	switch any(*new(T)).(type) {
	case Int:
		return any(b.ints).(*arena[T])
	case Str:
		return any(b.strs).(*arena[T])
	case IntArray:
		return any(b.arrays).(*arena[T])
	default:
		panic("engine: unsupported value kind")
	}
}

// MaxSnapshot captures, per kind, the number of admitted programs at the
// moment of the call. Enumerators are constructed against a MaxSnapshot so
// they never consume programs admitted later in the same level.
type MaxSnapshot struct {
	Int      int
	Str      int
	IntArray int
}

// CurrentMax captures the bank's current per-kind program counts.
func (b *Bank) CurrentMax() MaxSnapshot {
	return MaxSnapshot{
		Int:      len(b.ints.progs),
		Str:      len(b.strs.progs),
		IntArray: len(b.arrays.progs),
	}
}

// MaxFor extracts the slot of a MaxSnapshot relevant to kind T.
func MaxFor[T ValueType](snap MaxSnapshot) int {
	switch KindOf[T]() {
	case KindInt:
		return snap.Int
	case KindStr:
		return snap.Str
	default:
		return snap.IntArray
	}
}

// GetValues returns the length-E slice a ValueIndex addresses.
func GetValues[T ValueType](b *Bank, vi ValueIndex[T]) []T {
	return bankArena[T](b).values_(b.E, vi)
}

// GetProgram returns the admitted program at idx.
func GetProgram[T ValueType](b *Bank, idx ProgIndex[T]) *Program[T] {
	return &bankArena[T](b).progs[idx.pos]
}

// HasProgram reports whether idx addresses an admitted program.
func HasProgram[T ValueType](b *Bank, idx ProgIndex[T]) bool {
	a := bankArena[T](b)
	return idx.pos >= 0 && idx.pos < len(a.progs)
}

// Count returns the number of admitted programs of kind T.
func Count[T ValueType](b *Bank) int {
	return len(bankArena[T](b).progs)
}

// ValuesOf returns the per-example values of an AnyProg whose kind is T,
// letting callers outside this package (e.g. cmd/enumer) resolve a
// Driver.Next result to concrete values without reaching into ProgIndex's
// unexported fields.
func ValuesOf[T ValueType](b *Bank, prog AnyProg) []T {
	return GetValues[T](b, GetProgram[T](b, ProgIndex[T]{pos: prog.Pos}).Values)
}

func repeat[T ValueType](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// PutVariable interns a variable: the per-kind arena dedups on the pair
// (name, values), independent of the general OE index (which is also
// updated, so a later composite program that happens to reproduce this
// exact (values, pointer, pre, post) tuple is still correctly rejected as
// OE-equivalent).
func PutVariable[T ValueType](b *Bank, name string, values []T, ptr Pointer) (ProgIndex[T], bool) {
	a := bankArena[T](b)

	for _, pos := range a.byName[name] {
		if valuesEqual(GetValues[T](b, a.progs[pos].Values), values) {
			return ProgIndex[T]{pos: pos}, false
		}
	}

	vidx := a.putValues(values)
	av := AnyValIndex{Kind: KindOf[T](), Offset: vidx.offset}
	cond := EmptyCondition(len(b.Vars)).Mutate(ptr, &av)

	prog := Program[T]{
		Level:   0,
		Values:  vidx,
		Code:    func(*Bank) string { return name },
		Pointer: ptr,
		Pre:     cond,
		Post:    cond,
	}

	pos := len(a.progs)
	a.progs = append(a.progs, prog)
	a.byName[name] = append(a.byName[name], pos)
	registerOE(a, oeKey[T](values, ptr, cond, cond), pos)

	return ProgIndex[T]{pos: pos}, true
}

// PutConstant interns a constant whose value is scalar repeated E times,
// with empty pre/post conditions. It shares PutProgram's OE logic: a
// constant's OE key, (values, NoPointer, empty, empty), is exactly what a
// MaybeProgram built this way produces.
func PutConstant[T ValueType](b *Bank, code string, scalar T) (ProgIndex[T], bool) {
	empty := EmptyCondition(len(b.Vars))
	mp := &MaybeProgram[T]{
		Values:  repeat(scalar, b.E),
		Code:    func(*Bank) string { return code },
		Pointer: NoPointer,
		Pre:     empty,
		Post:    empty,
		Level:   0,
	}
	return PutProgram(b, mp)
}

// PutProgram extracts values from mp, forms its OE key, and either admits
// it (appending to the value and program arenas) or rejects it as
// OE-equivalent to an existing program. The second return value is true
// iff mp was admitted (a "new" index); when false, the returned index
// refers to the pre-existing equivalent program and mp is discarded.
func PutProgram[T ValueType](b *Bank, mp *MaybeProgram[T]) (ProgIndex[T], bool) {
	a := bankArena[T](b)
	key := oeKey[T](mp.Values, mp.Pointer, mp.Pre, mp.Post)

	if bucket, ok := a.oe.Get(key); ok {
		for _, pos := range bucket {
			existing := a.progs[pos]
			if existing.Pointer == mp.Pointer &&
				existing.Pre.Equal(mp.Pre) &&
				existing.Post.Equal(mp.Post) &&
				valuesEqual(GetValues[T](b, existing.Values), mp.Values) {
				return ProgIndex[T]{pos: pos}, false
			}
		}
	}

	vidx := a.putValues(mp.Values)
	prog := mp.intoProgram(vidx)
	pos := len(a.progs)
	a.progs = append(a.progs, prog)
	registerOE(a, key, pos)

	return ProgIndex[T]{pos: pos}, true
}

func registerOE[T ValueType](a *arena[T], key oeHash, pos int) {
	bucket, _ := a.oe.Get(key)
	a.oe.Set(key, append(bucket, pos))
}

func valuesEqual[T ValueType](a, b []T) bool {
	switch av := any(a).(type) {
	case []Int:
		return slices.Equal(av, any(b).([]Int))
	case []Str:
		return slices.Equal(av, any(b).([]Str))
	case []IntArray:
		bv := any(b).([]IntArray)
		return slices.EqualFunc(av, bv, func(x, y IntArray) bool { return slices.Equal(x, y) })
	default:
		return false
	}
}

// oeKey hashes a candidate's (values, pointer, pre, post) tuple into the
// bucket key used by arena.oe. blake2b rather than hash/maphash:
// hash/maphash reseeds per process, which would make two bucket keys for
// the same logical tuple differ across runs.
func oeKey[T ValueType](values []T, ptr Pointer, pre, post Condition) oeHash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	writeValues(h, values)
	_ = binary.Write(h, binary.LittleEndian, int64(ptr))
	writeCondition(h, pre)
	writeCondition(h, post)

	var out oeHash
	copy(out[:], h.Sum(nil))
	return out
}

func writeValues[T ValueType](w io.Writer, values []T) {
	switch vs := any(values).(type) {
	case []Int:
		for _, v := range vs {
			_ = binary.Write(w, binary.LittleEndian, int32(v))
		}
	case []Str:
		for _, v := range vs {
			_, _ = io.WriteString(w, string(v))
			_, _ = w.Write([]byte{0})
		}
	case []IntArray:
		for _, arr := range vs {
			_ = binary.Write(w, binary.LittleEndian, int32(len(arr)))
			for _, e := range arr {
				_ = binary.Write(w, binary.LittleEndian, int32(e))
			}
		}
	}
}

func writeCondition(w io.Writer, c Condition) {
	for _, s := range c.Slots {
		if s.Bound {
			_, _ = w.Write([]byte{1, byte(s.Kind)})
			_ = binary.Write(w, binary.LittleEndian, int64(s.Offset))
		} else {
			_, _ = w.Write([]byte{0, 0})
		}
	}
}
