package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentDefineGet(t *testing.T) {
	assert := assert.New(t)

	env := NewEnvironment(nil)
	name := NewToken(IDENTIFIER, "a", nil, 1)

	env.Define("a", 1.0)
	val, err := env.Get(name)
	assert.NoError(err)
	assert.Equal(1.0, val)

	// defining again overwrites the binding
	env.Define("a", 2.0)
	val, err = env.Get(name)
	assert.NoError(err)
	assert.Equal(2.0, val)
}

func TestEnvironmentGetUndefined(t *testing.T) {
	assert := assert.New(t)

	env := NewEnvironment(nil)
	name := NewToken(IDENTIFIER, "a", nil, 1)

	_, err := env.Get(name)
	assert.Error(err)
	assert.IsType(&RuntimeError{}, err)
	assert.Equal("Undefined variable 'a'.\n[line 1]", err.Error())
}

func TestEnvironmentAssign(t *testing.T) {
	assert := assert.New(t)

	outer := NewEnvironment(nil)
	inner := NewEnvironment(outer)
	name := NewToken(IDENTIFIER, "a", nil, 1)

	// assigning an undefined name fails
	err := inner.Assign(name, 1.0)
	assert.Error(err)

	// assigning from an inner frame writes through to the defining frame
	outer.Define("a", 1.0)
	assert.NoError(inner.Assign(name, 2.0))
	val, err := outer.Get(name)
	assert.NoError(err)
	assert.Equal(2.0, val)
}

func TestEnvironmentShadowing(t *testing.T) {
	assert := assert.New(t)

	outer := NewEnvironment(nil)
	inner := NewEnvironment(outer)
	name := NewToken(IDENTIFIER, "a", nil, 1)

	outer.Define("a", "outer")
	inner.Define("a", "inner")

	val, err := inner.Get(name)
	assert.NoError(err)
	assert.Equal("inner", val)

	val, err = outer.Get(name)
	assert.NoError(err)
	assert.Equal("outer", val)
}

func TestEnvironmentGetAtAssignAt(t *testing.T) {
	assert := assert.New(t)

	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)
	name := NewToken(IDENTIFIER, "a", nil, 1)

	global.Define("a", "global")
	middle.Define("a", "middle")
	inner.Define("a", "inner")

	// GetAt walks exactly the given number of frames, skipping shadowing
	// bindings on the way
	assert.Equal("inner", inner.GetAt(0, "a"))
	assert.Equal("middle", inner.GetAt(1, "a"))
	assert.Equal("global", inner.GetAt(2, "a"))

	// an assignment at a distance is visible to a read at the same distance
	inner.AssignAt(1, name, "updated")
	assert.Equal("updated", inner.GetAt(1, "a"))
	assert.Equal("inner", inner.GetAt(0, "a"))
	assert.Equal("global", inner.GetAt(2, "a"))
}
