package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicOperations(t *testing.T) {
	svc := New(nil)

	assert.Equal(t, 5.0, svc.Add(2, 3))
	assert.Equal(t, 0.0, svc.Add(-1, 1))
	assert.Equal(t, 2.0, svc.Subtract(5, 3))
	assert.Equal(t, -6.0, svc.Subtract(-2, 4))
	assert.Equal(t, 12.0, svc.Multiply(3, 4))
	assert.Equal(t, 0.0, svc.Multiply(7, 0))
}

func TestDivide(t *testing.T) {
	svc := New(nil)

	result, err := svc.Divide(10, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.5, result)

	_, err = svc.Divide(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestPower(t *testing.T) {
	svc := New(nil)

	assert.Equal(t, 8.0, svc.Power(2, 3))
	assert.Equal(t, 1.0, svc.Power(5, 0))
	assert.Equal(t, 0.25, svc.Power(2, -2))
}

func TestSqrt(t *testing.T) {
	svc := New(nil)

	result, err := svc.Sqrt(16)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result)

	result, err = svc.Sqrt(2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, result, 1e-12)

	_, err = svc.Sqrt(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative number")
}

func TestFactorial(t *testing.T) {
	svc := New(nil)

	cases := []struct {
		n    int
		want float64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
	}
	for _, tc := range cases {
		got, err := svc.Factorial(tc.n)
		require.NoError(t, err, "factorial(%d)", tc.n)
		assert.Equal(t, tc.want, got, "factorial(%d)", tc.n)
	}

	_, err := svc.Factorial(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative number")
}

func TestIsPrime(t *testing.T) {
	svc := New(nil)

	primes := []int{2, 3, 5, 7, 11, 13, 97}
	for _, n := range primes {
		assert.True(t, svc.IsPrime(n), "%d is prime", n)
	}

	composites := []int{-7, 0, 1, 4, 6, 9, 15, 100}
	for _, n := range composites {
		assert.False(t, svc.IsPrime(n), "%d is not prime", n)
	}
}
