package hdc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/edgehdc/hdc"
)

func TestMajority_Empty(t *testing.T) {
	var m hdc.Majority
	out := filled(0xFF)
	m.Result(&out)
	assert.Equal(t, hdc.Vector{}, out)
	assert.Zero(t, m.Count())
}

func TestMajority_SingleIdentity(t *testing.T) {
	var m hdc.Majority
	v := hdc.Random(42)
	m.Add(&v)

	var out hdc.Vector
	m.Result(&out)
	assert.Equal(t, v, out)
}

func TestMajority_OddIdentical(t *testing.T) {
	var m hdc.Majority
	v := hdc.Random(1)
	for i := 0; i < 3; i++ {
		m.Add(&v)
	}
	var out hdc.Vector
	m.Result(&out)
	assert.Equal(t, v, out)
	assert.Equal(t, 3, m.Count())
}

func TestMajority_TiesResolveToZero(t *testing.T) {
	var m hdc.Majority
	a, b := filled(0xAA), filled(0x55)
	m.Add(&a)
	m.Add(&b)

	var out hdc.Vector
	m.Result(&out)
	assert.Equal(t, hdc.Vector{}, out)
}

func TestMajority_MatchesBitwiseVote(t *testing.T) {
	a, b, c := hdc.Random(1), hdc.Random(2), hdc.Random(3)
	var m hdc.Majority
	m.Add(&a)
	m.Add(&b)
	m.Add(&c)

	var out hdc.Vector
	m.Result(&out)

	// maj(a,b,c) = (a&b) | (a&c) | (b&c)
	var ab, ac, bc, want hdc.Vector
	hdc.And(&ab, &a, &b)
	hdc.And(&ac, &a, &c)
	hdc.And(&bc, &b, &c)
	hdc.Or(&want, &ab, &ac)
	hdc.Or(&want, &want, &bc)
	require.Equal(t, want, out)

	// Each input agrees with the vote on ~3/4 of the dimensions.
	for _, v := range []hdc.Vector{a, b, c} {
		s := hdc.Similarity(&out, &v)
		assert.Greater(t, s, 80)
	}
}

func TestMajority_DoesNotSaturate(t *testing.T) {
	var m hdc.Majority
	var or hdc.Vector
	for seed := uint64(0); seed < 31; seed++ {
		v := hdc.Random(seed)
		m.Add(&v)
		hdc.Bundle(&or, &v)
	}
	var out hdc.Vector
	m.Result(&out)
	assert.Equal(t, hdc.Dims, hdc.PopCount(&or))
	assert.Less(t, hdc.PopCount(&out), hdc.Dims)
}

func TestMajority_Reset(t *testing.T) {
	var m hdc.Majority
	v := filled(0xFF)
	m.Add(&v)
	m.Reset()

	var out hdc.Vector
	m.Result(&out)
	assert.Equal(t, hdc.Vector{}, out)
	assert.Zero(t, m.Count())
}
