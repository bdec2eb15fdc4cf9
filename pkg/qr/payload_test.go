package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	p, err := ParsePayload("1/2/3")
	require.NoError(t, err)
	assert.Equal(t, Payload{CategoryID: 1, ProductID: 2, LocationID: 3}, p)
}

func TestParsePayloadTrimsWhitespace(t *testing.T) {
	p, err := ParsePayload("  4/10/4 ")
	require.NoError(t, err)
	assert.Equal(t, Payload{CategoryID: 4, ProductID: 10, LocationID: 4}, p)
}

func TestParsePayloadIgnoresExtraParts(t *testing.T) {
	p, err := ParsePayload("1/2/3/extra/parts")
	require.NoError(t, err)
	assert.Equal(t, Payload{CategoryID: 1, ProductID: 2, LocationID: 3}, p)
}

func TestParsePayloadInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"one part", "1"},
		{"two parts", "1/2"},
		{"non-integer category", "a/2/3"},
		{"non-integer product", "1/b/3"},
		{"non-integer location", "1/2/c"},
		{"negative id", "1/-2/3"},
		{"float id", "1.5/2/3"},
		{"overflow", "99999999999999999999/2/3"},
		{"free text", "hello world"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePayload(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}
