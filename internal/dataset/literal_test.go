package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	t.Run("tuple entries", func(t *testing.T) {
		pairs, err := ParsePairs("[('k1', 0.53), ('k2', 6.7e-1)]")
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, Pair{Name: "k1", Value: 0.53}, pairs[0])
		assert.Equal(t, Pair{Name: "k2", Value: 0.67}, pairs[1])
	})

	t.Run("list entries and quoted values", func(t *testing.T) {
		pairs, err := ParsePairs(`[['beta', '0.25'], ["gamma", 1]]`)
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, "beta", pairs[0].Name)
		assert.Equal(t, 0.25, pairs[0].Value)
		assert.Equal(t, 1.0, pairs[1].Value)
	})

	t.Run("preserves duplicate order", func(t *testing.T) {
		pairs, err := ParsePairs("[('a', 1), ('a', 2)]")
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, 1.0, pairs[0].Value)
		assert.Equal(t, 2.0, pairs[1].Value)
	})

	t.Run("empty encodings", func(t *testing.T) {
		for _, s := range []string{"", "[]", "nan", "NaN", "  "} {
			pairs, err := ParsePairs(s)
			require.NoError(t, err, "input %q", s)
			assert.Empty(t, pairs, "input %q", s)
		}
	})

	t.Run("malformed inputs", func(t *testing.T) {
		cases := []string{
			"[('a', 1)",        // unterminated list
			"[('a' 1)]",        // missing comma
			"[('a', )]",        // missing value
			"[(a, 1)]",         // unquoted name
			"[('a', 1)] extra", // trailing data
			"('a', 1)",         // no list
		}
		for _, s := range cases {
			_, err := ParsePairs(s)
			require.Error(t, err, "input %q", s)
			var perr *ParseError
			require.ErrorAs(t, err, &perr, "input %q", s)
			assert.NotEmpty(t, perr.Msg)
		}
	})
}

func TestParseDict(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		pairs, err := ParseDict("{'k5': 0.539, 'k6': 0.672}")
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, Pair{Name: "k5", Value: 0.539}, pairs[0])
		assert.Equal(t, Pair{Name: "k6", Value: 0.672}, pairs[1])
	})

	t.Run("empty encodings", func(t *testing.T) {
		for _, s := range []string{"", "{}", "nan", "NaN"} {
			pairs, err := ParseDict(s)
			require.NoError(t, err, "input %q", s)
			assert.Empty(t, pairs, "input %q", s)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, s := range []string{"{'a' 1}", "{'a': }", "{'a': 1", "{'a': 1} tail"} {
			_, err := ParseDict(s)
			require.Error(t, err, "input %q", s)
		}
	})
}

func TestPairsMapDuplicates(t *testing.T) {
	m, err := PairsMap("[('a', 1), ('a', 2), ('b', 3)]")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 2, "b": 3}, m)
}

func TestDictMapNegativeAndScientific(t *testing.T) {
	m, err := DictMap("{'a': -1.5, 'b': 2.5e-08}")
	require.NoError(t, err)
	assert.Equal(t, -1.5, m["a"])
	assert.Equal(t, 2.5e-08, m["b"])
}

func TestParseErrorTruncatesInput(t *testing.T) {
	long := "[('a', " + strings.Repeat("z", 100) + ")]"
	_, err := ParsePairs(long)
	require.Error(t, err)
	assert.LessOrEqual(t, len(err.Error()), 160)
}
