package memo

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultNumberPrefix is prepended to every generated reference number.
const DefaultNumberPrefix = "NITT/DG"

// NumberGenerator produces reference numbers of the form PREFIX/YEAR/NNNN.
//
// The four-digit suffix is the leading four decimal digits of a random
// UUID read as a 128-bit integer. Collisions are possible; callers check
// the store and ask again.
type NumberGenerator struct {
	Prefix string
	Rand   io.Reader // nil means crypto/rand
}

// NewNumberGenerator returns a generator using crypto/rand.
func NewNumberGenerator(prefix string) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return &NumberGenerator{Prefix: prefix}
}

// Next returns a fresh number stamped with now's year.
func (g *NumberGenerator) Next(now time.Time) (string, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate memo number: %w", err)
	}
	return FormatNumber(g.Prefix, now.Year(), suffix(id)), nil
}

// FormatNumber assembles a reference number from its parts.
func FormatNumber(prefix string, year int, seq string) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimRight(prefix, "/"), year, seq)
}

func suffix(id uuid.UUID) string {
	digits := new(big.Int).SetBytes(id[:]).String()
	if len(digits) < 4 {
		digits = strings.Repeat("0", 4-len(digits)) + digits
	}
	return digits[:4]
}

// SafeNumber turns a reference number into something usable as a file name.
func SafeNumber(number string) string {
	return strings.ReplaceAll(number, "/", "-")
}
