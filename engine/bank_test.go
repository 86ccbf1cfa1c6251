package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBank_PutVariable_NewAndDuplicate(t *testing.T) {
	b := NewBank(2, []string{"x"})

	idx1, added := PutVariable(b, "x", []Int{0, 2}, 0)
	require.True(t, added)

	idx2, added := PutVariable(b, "x", []Int{0, 2}, 0)
	assert.False(t, added)
	assert.Equal(t, idx1, idx2)

	assert.Equal(t, 1, Count[Int](b))
}

func TestBank_PutVariable_RecordsPointerAndConditions(t *testing.T) {
	b := NewBank(2, []string{"x", "y"})
	idx, _ := PutVariable(b, "x", []Int{0, 2}, 0)
	prog := GetProgram[Int](b, idx)

	assert.Equal(t, Pointer(0), prog.Pointer)
	assert.Equal(t, 0, prog.Level)

	got, ok := prog.Pre.Get(0)
	require.True(t, ok)
	assert.Equal(t, KindInt, got.Kind)
	assert.True(t, prog.Pre.Equal(prog.Post))

	vals := GetValues[Int](b, prog.Values)
	assert.Equal(t, []Int{0, 2}, vals)
}

func TestBank_PutConstant_RepeatsAcrossExamples(t *testing.T) {
	b := NewBank(3, nil)
	idx, added := PutConstant(b, "0", Int(0))
	require.True(t, added)

	prog := GetProgram[Int](b, idx)
	assert.Equal(t, []Int{0, 0, 0}, GetValues[Int](b, prog.Values))
	assert.Equal(t, NoPointer, prog.Pointer)
}

func TestBank_PutConstant_Deduplicates(t *testing.T) {
	b := NewBank(1, nil)
	idx1, added1 := PutConstant(b, "1", Int(1))
	idx2, added2 := PutConstant(b, "1", Int(1))
	require.True(t, added1)
	assert.False(t, added2)
	assert.Equal(t, idx1, idx2)
	assert.Equal(t, 1, Count[Int](b))
}

// x+y and y+x produce identical values under identical (pre,post) and
// must collapse to one admitted program.
func TestBank_PutProgram_OERejectsIdenticalValues(t *testing.T) {
	b := NewBank(2, []string{"x", "y"})
	empty := EmptyCondition(2)

	mp1 := &MaybeProgram[Int]{
		Values:  []Int{1, 3},
		Code:    func(*Bank) string { return "x + y" },
		Pointer: NoPointer,
		Pre:     empty,
		Post:    empty,
		Level:   1,
	}
	idx1, added1 := PutProgram(b, mp1)
	require.True(t, added1)

	mp2 := &MaybeProgram[Int]{
		Values:  []Int{1, 3},
		Code:    func(*Bank) string { return "y + x" },
		Pointer: NoPointer,
		Pre:     empty,
		Post:    empty,
		Level:   1,
	}
	idx2, added2 := PutProgram(b, mp2)
	assert.False(t, added2)
	assert.Equal(t, idx1, idx2)
	assert.Equal(t, 1, Count[Int](b))
}

// Two programs with the same values but different (pre, post) are
// distinct admitted programs.
func TestBank_PutProgram_DifferentConditionsAreNotOE(t *testing.T) {
	b := NewBank(1, []string{"x"})
	v1 := AnyValIndex{Kind: KindInt, Offset: 0}
	v2 := AnyValIndex{Kind: KindInt, Offset: 1}

	cond1 := EmptyCondition(1).Mutate(0, &v1)
	cond2 := EmptyCondition(1).Mutate(0, &v2)

	mp1 := &MaybeProgram[Int]{Values: []Int{9}, Code: func(*Bank) string { return "a" }, Pointer: NoPointer, Pre: cond1, Post: cond1, Level: 1}
	mp2 := &MaybeProgram[Int]{Values: []Int{9}, Code: func(*Bank) string { return "b" }, Pointer: NoPointer, Pre: cond2, Post: cond2, Level: 1}

	_, added1 := PutProgram(b, mp1)
	_, added2 := PutProgram(b, mp2)
	assert.True(t, added1)
	assert.True(t, added2)
	assert.Equal(t, 2, Count[Int](b))
}

func TestBank_CurrentMax_SnapshotsPerKind(t *testing.T) {
	b := NewBank(1, []string{"x", "s"})
	PutVariable(b, "x", []Int{1}, 0)
	PutVariable(b, "s", []Str{"a"}, 1)

	snap := b.CurrentMax()
	assert.Equal(t, 1, snap.Int)
	assert.Equal(t, 1, snap.Str)
	assert.Equal(t, 0, snap.IntArray)

	PutConstant(b, "0", Int(0))
	assert.Equal(t, 1, snap.Int, "snapshot must not see programs admitted afterward")
	assert.Equal(t, 2, Count[Int](b))
}

func TestBank_HasProgram(t *testing.T) {
	b := NewBank(1, []string{"x"})
	idx, _ := PutVariable(b, "x", []Int{1}, 0)
	assert.True(t, HasProgram(b, idx))
	assert.False(t, HasProgram(b, ProgIndex[Int]{pos: idx.pos + 1000}))
}
