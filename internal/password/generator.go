// internal/password/generator.go
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	DefaultLength = 12
	MinLength     = 4
	MaxLength     = 128

	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	Symbols = "!@#$%&*-_=+"
)

var (
	ErrTooShort = errors.New("password length below minimum")
	ErrTooLong  = errors.New("password length above maximum")
)

// classes are drawn once each so every password has one of every kind.
var classes = []string{Upper, Lower, Digits, Symbols}

var allChars = Upper + Lower + Digits + Symbols

type Generator struct {
	random io.Reader
}

// NewGenerator returns a generator reading from r; nil means crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{random: r}
}

// Generate returns a DefaultLength password.
func (g *Generator) Generate() (string, error) {
	return g.GenerateN(DefaultLength)
}

func (g *Generator) GenerateN(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("%w: %d < %d", ErrTooShort, length, MinLength)
	}
	if length > MaxLength {
		return "", fmt.Errorf("%w: %d > %d", ErrTooLong, length, MaxLength)
	}

	pass := make([]byte, 0, length)
	for _, class := range classes {
		c, err := g.pick(class)
		if err != nil {
			return "", err
		}
		pass = append(pass, c)
	}
	for len(pass) < length {
		c, err := g.pick(allChars)
		if err != nil {
			return "", err
		}
		pass = append(pass, c)
	}

	// Fisher–Yates
	for i := len(pass) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		pass[i], pass[j] = pass[j], pass[i]
	}
	return string(pass), nil
}

func (g *Generator) pick(set string) (byte, error) {
	i, err := g.intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read randomness: %w", err)
	}
	return int(v.Int64()), nil
}

// Generate uses a crypto/rand backed generator.
func Generate() (string, error) {
	return NewGenerator(nil).Generate()
}
