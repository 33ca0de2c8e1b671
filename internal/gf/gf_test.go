package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExpLogInverse(t *testing.T) {
	for x := 1; x < 256; x++ {
		assert.Equalf(t, byte(x), Exp(int(Log(byte(x)))), "exp[log[%d]] mismatch", x)
	}
	for i := 0; i < 255; i++ {
		assert.Equalf(t, byte(i), Log(Exp(i)), "log[exp[%d]] mismatch", i)
	}
}

func TestExpWrapsAt255(t *testing.T) {
	for i := 0; i < 255; i++ {
		assert.Equal(t, Exp(i), Exp(i+255))
	}
}

func TestLogZeroIsSentinel(t *testing.T) {
	assert.Equal(t, byte(A0), Log(0))
}

func TestMulDivRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a = byte(rapid.IntRange(1, 255).Draw(t, "a"))
		var b = byte(rapid.IntRange(1, 255).Draw(t, "b"))

		var product = Mul(a, b)
		assert.Equal(t, a, Div(product, b))
		assert.Equal(t, b, Div(product, a))
	})
}

func TestMulByZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a = byte(rapid.IntRange(0, 255).Draw(t, "a"))
		assert.Equal(t, byte(0), Mul(a, 0))
		assert.Equal(t, byte(0), Mul(0, a))
	})
}

func TestPow(t *testing.T) {
	assert.Equal(t, byte(1), Pow(2, 0))
	assert.Equal(t, byte(0), Pow(0, 5))
	assert.Equal(t, byte(1), Pow(0, 0))
	assert.Equal(t, Mul(Mul(2, 2), 2), Pow(2, 3))
}
