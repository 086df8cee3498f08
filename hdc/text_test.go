package hdc_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/edgehdc/hdc"
)

func TestString_ByteOrderUppercase(t *testing.T) {
	var v hdc.Vector
	v[0] = 0xAB
	v[15] = 0x0C
	assert.Equal(t, "AB"+strings.Repeat("00", 14)+"0C", v.String())
}

func TestString_Extremes(t *testing.T) {
	var v hdc.Vector
	assert.Equal(t, strings.Repeat("0", hdc.HexLen), v.String())
	hdc.Fill(&v, 0xFF)
	assert.Equal(t, strings.Repeat("F", hdc.HexLen), v.String())
}

func TestParseHex_AcceptsLowercase(t *testing.T) {
	want := hdc.Random(7)
	got, err := hdc.ParseHex(strings.ToLower(want.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseHex_Errors(t *testing.T) {
	_, err := hdc.ParseHex("ABCD")
	assert.True(t, errors.Is(err, hdc.ErrHexLength), "got %v", err)

	_, err = hdc.ParseHex(strings.Repeat("Z", hdc.HexLen))
	assert.True(t, errors.Is(err, hdc.ErrHexDigit), "got %v", err)
}

func TestUnmarshalText_LeavesVectorOnError(t *testing.T) {
	v := filled(0x11)
	err := v.UnmarshalText([]byte(strings.Repeat("G", hdc.HexLen)))
	require.Error(t, err)
	assert.Equal(t, filled(0x11), v)
}

func TestMarshalText_JSON(t *testing.T) {
	v := hdc.Random(3)
	data, err := json.Marshal(map[string]hdc.Vector{"hv": v})
	require.NoError(t, err)
	assert.Equal(t, `{"hv":"`+v.String()+`"}`, string(data))

	var back map[string]hdc.Vector
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back["hv"])
}
