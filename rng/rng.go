// Package rng provides reproducible pseudo-random streams for maze layout and
// path shuffling. A stream is a pure function of its seed string, so two
// requests with the same seed observe the same sequence regardless of
// platform, and unrelated requests never share generator state.
package rng

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// Source is a stream of floats in [0, 1) plus helpers derived from it.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
	// Seed returns the seed the stream was built from.
	Seed() string
}

// Stream generates bytes from keyed BLAKE2b rounds of 32 bytes each.
// It is not safe for concurrent use.
type Stream struct {
	seed   string
	key    [32]byte
	round  uint64
	cursor int
	buffer [32]byte
}

// New creates a deterministic stream for seed.
func New(seed string) *Stream {
	return &Stream{
		seed:   seed,
		key:    blake2b.Sum256([]byte(seed)),
		cursor: 32,
	}
}

// NewEntropy creates a stream from a freshly drawn random seed. The seed is
// reported by Seed so the run can be replayed.
func NewEntropy() *Stream {
	return New(EntropySeed())
}

// FromOptional returns New(seed) for a non-empty seed and NewEntropy otherwise.
func FromOptional(seed string) *Stream {
	if seed == "" {
		return NewEntropy()
	}
	return New(seed)
}

// EntropySeed draws a 128-bit hex seed from the operating system.
func EntropySeed() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(fmt.Sprintf("rng: reading entropy: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// Derive builds a child seed for a labelled sub-stream, e.g. one per player.
func Derive(seed, label string) string {
	return seed + ":" + label
}

// DeriveAttempt builds the seed used for a regeneration attempt.
func DeriveAttempt(seed string, attempt int) string {
	if attempt == 0 {
		return seed
	}
	return seed + "#" + strconv.Itoa(attempt)
}

func (s *Stream) Seed() string {
	return s.seed
}

func (s *Stream) nextByte() byte {
	if s.cursor >= len(s.buffer) {
		s.generateRound()
	}
	b := s.buffer[s.cursor]
	s.cursor++
	return b
}

func (s *Stream) generateRound() {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		// only returned for keys longer than 64 bytes
		panic(err)
	}
	fmt.Fprintf(h, "round:%d", s.round)
	copy(s.buffer[:], h.Sum(nil))
	s.round++
	s.cursor = 0
}

// Float64 returns the next float in [0, 1) built from four stream bytes.
func (s *Stream) Float64() float64 {
	b0 := s.nextByte()
	b1 := s.nextByte()
	b2 := s.nextByte()
	b3 := s.nextByte()
	return float64(b0)/256.0 +
		float64(b1)/(256.0*256.0) +
		float64(b2)/(256.0*256.0*256.0) +
		float64(b3)/(256.0*256.0*256.0*256.0)
}

// Intn returns an int in [0, n). It panics if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}
	return int(s.Float64() * float64(n))
}

// Shuffle permutes n elements with Fisher-Yates.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
