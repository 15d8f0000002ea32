package httpapi

import (
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qalabs/reporting-demo-api/internal/app/metrics"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

// calculatorPayload carries every field any calculator operation accepts.
// Binary operations use a/b, power uses base/exponent, unary operations use
// number.
type calculatorPayload struct {
	A        *float64 `json:"a"`
	B        *float64 `json:"b"`
	Base     *float64 `json:"base"`
	Exponent *float64 `json:"exponent"`
	Number   *float64 `json:"number"`
}

func (h *handler) calculate(w http.ResponseWriter, r *http.Request) {
	operation := mux.Vars(r)["operation"]

	var payload calculatorPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordCalculatorOp(operation, false)
		writeError(w, err)
		return
	}

	result, response, err := h.evaluate(operation, payload)
	if err != nil {
		metrics.RecordCalculatorOp(operation, false)
		writeError(w, err)
		return
	}

	response["operation"] = operation
	response["result"] = result
	metrics.RecordCalculatorOp(operation, true)
	writeJSON(w, http.StatusOK, response)
}

func (h *handler) evaluate(operation string, p calculatorPayload) (interface{}, map[string]interface{}, error) {
	calc := h.app.Calculator

	switch operation {
	case "add", "subtract", "multiply", "divide":
		if p.A == nil || p.B == nil {
			return nil, nil, apperr.Validation("both arguments must be numbers")
		}
		inputs := map[string]interface{}{"a": *p.A, "b": *p.B}
		switch operation {
		case "add":
			return calc.Add(*p.A, *p.B), inputs, nil
		case "subtract":
			return calc.Subtract(*p.A, *p.B), inputs, nil
		case "multiply":
			return calc.Multiply(*p.A, *p.B), inputs, nil
		default:
			result, err := calc.Divide(*p.A, *p.B)
			return result, inputs, err
		}

	case "power":
		if p.Base == nil || p.Exponent == nil {
			return nil, nil, apperr.Validation("both arguments must be numbers")
		}
		result := calc.Power(*p.Base, *p.Exponent)
		return result, map[string]interface{}{"base": *p.Base, "exponent": *p.Exponent}, nil

	case "sqrt":
		if p.Number == nil {
			return nil, nil, apperr.Validation("argument must be a number")
		}
		result, err := calc.Sqrt(*p.Number)
		return result, map[string]interface{}{"number": *p.Number}, err

	case "factorial":
		n, err := intArgument(p.Number)
		if err != nil {
			return nil, nil, err
		}
		result, err := calc.Factorial(n)
		return result, map[string]interface{}{"number": n}, err

	case "isPrime":
		n, err := intArgument(p.Number)
		if err != nil {
			return nil, nil, err
		}
		return calc.IsPrime(n), map[string]interface{}{"number": n}, nil

	default:
		return nil, nil, apperr.NotFound("unknown operation %s", operation)
	}
}

// intArgument rejects absent and fractional JSON numbers at the boundary.
func intArgument(raw *float64) (int, error) {
	if raw == nil || *raw != math.Trunc(*raw) {
		return 0, apperr.Validation("argument must be an integer")
	}
	return int(*raw), nil
}
