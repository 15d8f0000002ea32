// Package calculator provides stateless arithmetic operations with explicit
// domain errors.
package calculator

import (
	"math"

	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

// Service performs arithmetic. It holds no state beyond its logger.
type Service struct {
	log *logger.Logger
}

// New constructs a calculator service.
func New(log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("calculator")
	}
	return &Service{log: log}
}

// Add returns a + b.
func (s *Service) Add(a, b float64) float64 { return a + b }

// Subtract returns a - b.
func (s *Service) Subtract(a, b float64) float64 { return a - b }

// Multiply returns a * b.
func (s *Service) Multiply(a, b float64) float64 { return a * b }

// Divide returns a / b, rejecting a zero divisor.
func (s *Service) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, apperr.Validation("division by zero is not allowed")
	}
	return a / b, nil
}

// Power returns base raised to exponent, including negative and fractional
// exponents.
func (s *Service) Power(base, exponent float64) float64 {
	return math.Pow(base, exponent)
}

// Sqrt returns the square root, rejecting negative input.
func (s *Service) Sqrt(n float64) (float64, error) {
	if n < 0 {
		return 0, apperr.Validation("cannot calculate square root of negative number")
	}
	return math.Sqrt(n), nil
}

// Factorial returns n! recursively. Negative input is rejected. The result is
// a float64 so large factorials degrade gracefully instead of overflowing.
func (s *Service) Factorial(n int) (float64, error) {
	if n < 0 {
		return 0, apperr.Validation("cannot calculate factorial of negative number")
	}
	if n == 0 || n == 1 {
		return 1, nil
	}
	prev, err := s.Factorial(n - 1)
	if err != nil {
		return 0, err
	}
	return float64(n) * prev, nil
}

// IsPrime reports primality by trial division up to the integer square root,
// inclusive. All values below 2 are composite by definition here.
func (s *Service) IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
