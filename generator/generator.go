package generator

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/cockroachdb/errors"
)

// AppKeySize is the amount of random bytes an application key is made of
const AppKeySize = 32

// AppKeyPrefix tags the encoding of the key
const AppKeyPrefix = "base64:"

// ErrRandomSource indicates the secure random source could not supply enough entropy
var ErrRandomSource = errors.New("secure random source unavailable")

type RandomKeyGenerator struct {
	source io.Reader
}

// CreateAppKey reads AppKeySize bytes from the secure source and returns them
// standard base64 encoded with the AppKeyPrefix.
// There is no fallback, if the source fails the key is not issued.
func (g *RandomKeyGenerator) CreateAppKey() (string, error) {
	b := make([]byte, AppKeySize)
	if _, err := io.ReadFull(g.source, b); err != nil {
		return "", errors.Mark(errors.Wrap(err, "unable to read random bytes"), ErrRandomSource)
	}
	return AppKeyPrefix + base64.StdEncoding.EncodeToString(b), nil
}

// New returns a generator backed by crypto/rand
func New() *RandomKeyGenerator {
	return &RandomKeyGenerator{source: rand.Reader}
}

// NewWithSource returns a generator reading from the supplied source,
// the source has to be cryptographically secure.
func NewWithSource(source io.Reader) *RandomKeyGenerator {
	return &RandomKeyGenerator{source: source}
}
