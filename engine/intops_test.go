package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntAdd(t *testing.T) {
	res, ok := IntAdd.eval([]Int{2}, NoPointer, []Int{3}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{5}, res.Values)
	assert.Equal(t, "x + y", IntAdd.code("x", "y"))
}

func TestIntAdd_OverflowPrunes(t *testing.T) {
	_, ok := IntAdd.eval([]Int{math.MaxInt32}, NoPointer, []Int{1}, NoPointer, EmptyCondition(0), nil)
	assert.False(t, ok)
}

func TestIntSub(t *testing.T) {
	res, ok := IntSub.eval([]Int{5}, NoPointer, []Int{3}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{2}, res.Values)
	assert.Equal(t, "x - y", IntSub.code("x", "y"))
}

func TestIntMul(t *testing.T) {
	res, ok := IntMul.eval([]Int{4}, NoPointer, []Int{3}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{12}, res.Values)
	assert.Equal(t, "x * y", IntMul.code("x", "y"))
}

func TestIntPow(t *testing.T) {
	res, ok := IntPow.eval([]Int{2}, NoPointer, []Int{5}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{32}, res.Values)
	assert.Equal(t, "x ** y", IntPow.code("x", "y"))
}

func TestIntPow_NegativeExponentPrunes(t *testing.T) {
	_, ok := IntPow.eval([]Int{2}, NoPointer, []Int{-1}, NoPointer, EmptyCondition(0), nil)
	assert.False(t, ok)
}

func TestIntPostfixInc_RejectsNonLvalueArgument(t *testing.T) {
	_, ok := IntPostfixInc.eval([]Int{5}, NoPointer, EmptyCondition(0), nil)
	assert.False(t, ok)
}

func TestIntPostfixInc_ReadsOldValueAndMutatesSlot(t *testing.T) {
	res, ok := IntPostfixInc.eval([]Int{5}, Pointer(0), EmptyCondition(1), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{5}, res.Values)
	require.NotNil(t, res.Mutation)
	assert.Equal(t, Pointer(0), res.Mutation.Ptr)
	assert.Equal(t, []Int{6}, res.Mutation.Values)
	assert.Equal(t, Pointer(0), res.Pointer)
	assert.Equal(t, "x++", IntPostfixInc.code("x"))
}

func TestIntPostfixInc_OverflowPrunes(t *testing.T) {
	_, ok := IntPostfixInc.eval([]Int{math.MaxInt32}, Pointer(0), EmptyCondition(1), nil)
	assert.False(t, ok)
}
