package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrLength_CountsRunesNotBytes(t *testing.T) {
	res, ok := StrLength.eval([]Str{"héllo"}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Int{5}, res.Values)
}

func TestStrConcat(t *testing.T) {
	res, ok := StrConcat.eval([]Str{"foo"}, NoPointer, []Str{"bar"}, NoPointer, EmptyCondition(0), nil)
	require.True(t, ok)
	assert.Equal(t, []Str{"foobar"}, res.Values)
	assert.Equal(t, NoPointer, res.Pointer)
}
