package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("value_equals", func(Args) (Body, error) {
		return func(_ *T, _ *Env) {}, nil
	}))

	builder, ok := reg.Lookup("value_equals")
	assert.True(t, ok)
	assert.NotNil(t, builder)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_RejectsBadRegistrations(t *testing.T) {
	reg := NewRegistry()
	noop := func(Args) (Body, error) { return func(_ *T, _ *Env) {}, nil }

	assert.Error(t, reg.Register("", noop))
	assert.Error(t, reg.Register("nil_builder", nil))

	require.NoError(t, reg.Register("taken", noop))
	err := reg.Register("taken", noop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	noop := func(Args) (Body, error) { return func(_ *T, _ *Env) {}, nil }
	reg.MustRegister("zeta", noop)
	reg.MustRegister("alpha", noop)
	reg.MustRegister("mid", noop)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestArgs_Require(t *testing.T) {
	args := Args{"view": "content", "blank": ""}

	v, err := args.Require("view")
	require.NoError(t, err)
	assert.Equal(t, "content", v)

	_, err = args.Require("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required param "absent"`)

	_, err = args.Require("blank")
	assert.Error(t, err)
}

func TestArgs_AllowOnly(t *testing.T) {
	args := Args{"view": "content", "property": "color"}

	assert.NoError(t, args.AllowOnly("view", "property", "expect"))

	err := args.AllowOnly("view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown params: property")
}

func TestEnv_ViewSlots(t *testing.T) {
	env := NewEnv(nil, nil)

	_, ok := env.View("content")
	assert.False(t, ok)

	env.StoreView("content", nil)
	env.StoreView("aside", nil)

	_, ok = env.View("content")
	assert.True(t, ok)
	assert.Equal(t, []string{"aside", "content"}, env.ViewNames())
}
