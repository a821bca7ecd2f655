// Package gameid produces sortable hand identifiers: a UUIDv7 encoded as a
// 26 character lowercase Crockford base32 string.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase, without i, l, o and u.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier: 128 bits plus two leading zero bits.
const Length = 26

// Generator produces identifiers from an optional random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading random bits from r. A nil reader
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new identifier using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new identifier.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		panic("gameid: failed to generate uuid: " + err.Error())
	}
	return encode(id)
}

// encode writes the 128 bits most significant first, prefixed with two zero
// bits so the result is exactly 26 characters and sorts like the UUID.
func encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			v <<= 1
			bit := i*5 + b - 2
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an identifier back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return id, fmt.Errorf("game ID first character must be 0-7, got %c", s[0])
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := range 5 {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is a well formed identifier holding a version 7 UUID.
func Validate(s string) error {
	id, err := Parse(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("game ID holds uuid version %d, want 7", id.Version())
	}
	return nil
}
