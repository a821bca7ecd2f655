package gameid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
	assert.LessOrEqual(t, id[0], byte('7'))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, Generate())
		time.Sleep(2 * time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := uuid.Must(uuid.NewV7())
	back, err := Parse(encode(src))
	require.NoError(t, err)
	assert.Equal(t, src, back)
}

func TestEncodeKnownValues(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", Length), encode(uuid.Nil))
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), encode(uuid.Max))
}

func TestGeneratorWithReader(t *testing.T) {
	gen := NewGenerator(bytes.NewReader(bytes.Repeat([]byte{0xab}, 64)))
	id := gen.Generate()
	require.NoError(t, Validate(id))
}

func TestValidate(t *testing.T) {
	valid := encode(uuid.Must(uuid.NewV7()))
	v4 := encode(uuid.Must(uuid.NewRandom()))

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid ID", id: valid},
		{name: "too short", id: valid[:21], wantErr: true},
		{name: "too long", id: valid + "ab", wantErr: true},
		{name: "first char too high", id: "8" + valid[1:], wantErr: true},
		{name: "invalid character", id: valid[:25] + "i", wantErr: true},
		{name: "uppercase not allowed", id: strings.ToUpper(valid), wantErr: true},
		{name: "wrong uuid version", id: v4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAlphabet(t *testing.T) {
	require.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}
	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
