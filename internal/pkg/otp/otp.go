package otp

import (
	"crypto/rand"
	"errors"
	"io"
	"math"
	"math/big"

	"github.com/pquerna/otp"
)

// Supported code lengths.
const (
	DigitsSix   = otp.DigitsSix
	DigitsEight = otp.DigitsEight
)

// ErrUnsupportedDigits is returned when the requested code length is not 6 or 8.
var ErrUnsupportedDigits = errors.New("otp: digits must be 6 or 8")

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a fresh code.
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes without a leading zero.
//
// With six digits the value is uniform over [100000, 999999].
type Numeric struct {
	digits otp.Digits
	min    int64
	span   *big.Int
	rand   io.Reader
}

// NewNumeric constructs a Numeric generator for the given length.
func NewNumeric(digits otp.Digits) (*Numeric, error) {
	if digits != DigitsSix && digits != DigitsEight {
		return nil, ErrUnsupportedDigits
	}

	lower := int64(math.Pow10(digits.Length() - 1))
	upper := int64(math.Pow10(digits.Length()))

	return &Numeric{
		digits: digits,
		min:    lower,
		span:   big.NewInt(upper - lower),
		rand:   rand.Reader,
	}, nil
}

// Generate returns a uniformly drawn code of the configured length.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, n.span)
	if err != nil {
		return "", err
	}

	return n.digits.Format(int32(n.min + v.Int64())), nil
}
