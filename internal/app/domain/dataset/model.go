// Package dataset defines the value types produced and consumed by the data
// processing service.
package dataset

// Stats summarizes a numeric series. Pointer fields are nil for an empty
// series so they serialize as JSON null.
type Stats struct {
	Sum     float64   `json:"sum"`
	Average *float64  `json:"average"`
	Min     *float64  `json:"min"`
	Max     *float64  `json:"max"`
	Count   int       `json:"count"`
	Median  *float64  `json:"median"`
	Mode    []float64 `json:"mode"`
}

// FieldSpec declares the expected shape of one record field.
type FieldSpec struct {
	// Type is a JSON runtime type name: string, number, boolean, object or
	// array.
	Type string `json:"type" yaml:"type"`
	// Required marks the field as mandatory on every record.
	Required bool `json:"required" yaml:"required"`
}

// Schema maps field names to their specs.
type Schema map[string]FieldSpec

// ValidationResult reports schema validation over a record series.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Record is one loosely-typed element of a data series, as decoded from JSON.
type Record map[string]interface{}
