package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInt, KindOf[Int]())
	assert.Equal(t, KindStr, KindOf[Str]())
	assert.Equal(t, KindIntArray, KindOf[IntArray]())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Int", KindInt.String())
	assert.Equal(t, "Str", KindStr.String())
	assert.Equal(t, "IntArray", KindIntArray.String())
	assert.Equal(t, "?", Kind(255).String())
}

func TestIntArray_CloneIsIndependent(t *testing.T) {
	a := IntArray{1, 2, 3}
	b := a.Clone()
	b[0] = 99
	assert.Equal(t, IntArray{1, 2, 3}, a)
	assert.Equal(t, IntArray{99, 2, 3}, b)
}

func TestNoPointer_IsNotAValidSlot(t *testing.T) {
	assert.Less(t, int(NoPointer), 0)
}
