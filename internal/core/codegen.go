package core

import (
	"errors"
	"math/rand/v2"

	"github.com/dkeye/roomrelay/internal/domain"
)

const (
	CodeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeLength = 5

	maxCodeAttempts = 1000
)

var ErrCodeSpaceExhausted = errors.New("no free room code")

// CodeGenerator draws room codes uniformly from CodeAlphabet.
type CodeGenerator struct {
	length int
	intN   func(n int) int
}

func NewCodeGenerator(length int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &CodeGenerator{length: length, intN: rand.IntN}
}

// NewSeededCodeGenerator is deterministic; used in tests.
func NewSeededCodeGenerator(length int, seed uint64) *CodeGenerator {
	g := NewCodeGenerator(length)
	g.intN = rand.New(rand.NewPCG(seed, seed)).IntN
	return g
}

func (g *CodeGenerator) Length() int { return g.length }

// Generate re-draws until taken reports the candidate free. The caller must
// hold whatever lock makes taken and the following insert one step.
func (g *CodeGenerator) Generate(taken func(domain.RoomCode) bool) (domain.RoomCode, error) {
	buf := make([]byte, g.length)
	for range maxCodeAttempts {
		for i := range buf {
			buf[i] = CodeAlphabet[g.intN(len(CodeAlphabet))]
		}
		code := domain.RoomCode(buf)
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
