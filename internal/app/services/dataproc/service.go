// Package dataproc provides stateless data-processing operations over numeric
// series and loosely-typed records.
package dataproc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/qalabs/reporting-demo-api/internal/app/domain/dataset"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

// Service performs data processing. It holds no state beyond its logger.
type Service struct {
	log *logger.Logger
}

// New constructs a data-processing service.
func New(log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("dataproc")
	}
	return &Service{log: log}
}

// Process summarizes a numeric series. An empty series yields zero count and
// sum with nil average, min, max, median and mode.
func (s *Service) Process(data []float64) dataset.Stats {
	stats := dataset.Stats{Count: len(data)}
	if len(data) == 0 {
		return stats
	}

	min, max := data[0], data[0]
	for _, v := range data {
		stats.Sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := stats.Sum / float64(len(data))

	stats.Average = &avg
	stats.Min = &min
	stats.Max = &max
	stats.Median = s.Median(data)
	stats.Mode = s.Mode(data)
	return stats
}

// Median returns the middle of the sorted series, averaging the two middle
// elements for even lengths. An empty series has no median.
func (s *Service) Median(data []float64) *float64 {
	if len(data) == 0 {
		return nil
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[middle-1] + sorted[middle]) / 2
	} else {
		median = sorted[middle]
	}
	return &median
}

// Mode returns the values achieving the maximum frequency, sorted ascending.
// When every value is unique there is no mode and nil is returned.
func (s *Service) Mode(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	frequency := make(map[float64]int, len(data))
	for _, v := range data {
		frequency[v]++
	}

	maxFreq := 0
	for _, count := range frequency {
		if count > maxFreq {
			maxFreq = count
		}
	}

	modes := make([]float64, 0, len(frequency))
	for v, count := range frequency {
		if count == maxFreq {
			modes = append(modes, v)
		}
	}
	if len(modes) == len(data) {
		return nil
	}
	sort.Float64s(modes)
	return modes
}

// Filter returns the elements satisfying the predicate.
func (s *Service) Filter(data []float64, predicate func(float64) bool) ([]float64, error) {
	if predicate == nil {
		return nil, apperr.Validation("predicate must be a function")
	}
	result := make([]float64, 0, len(data))
	for _, v := range data {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result, nil
}

// Transform applies the transformer to every element.
func (s *Service) Transform(data []float64, transformer func(float64) float64) ([]float64, error) {
	if transformer == nil {
		return nil, apperr.Validation("transformer must be a function")
	}
	result := make([]float64, len(data))
	for i, v := range data {
		result[i] = transformer(v)
	}
	return result, nil
}

// GroupBy partitions records by the string form of the named field. Each
// bucket preserves the original relative order.
func (s *Service) GroupBy(data []dataset.Record, key string) map[string][]dataset.Record {
	groups := make(map[string][]dataset.Record)
	for _, item := range data {
		bucket := fmt.Sprintf("%v", item[key])
		groups[bucket] = append(groups[bucket], item)
	}
	return groups
}

// Sort stably orders records by the named field. Any order other than "desc"
// sorts ascending. Numbers compare numerically, everything else by its string
// form.
func (s *Service) Sort(data []dataset.Record, field, order string) []dataset.Record {
	sorted := append([]dataset.Record(nil), data...)
	descending := order == "desc"

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return lessValues(sorted[j][field], sorted[i][field])
		}
		return lessValues(sorted[i][field], sorted[j][field])
	})
	return sorted
}

func lessValues(a, b interface{}) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

// ProcessAsync applies fn to every element concurrently, preserving input
// order in the result. The first failure fails the whole call with no
// partial results.
func (s *Service) ProcessAsync(ctx context.Context, data []float64, fn func(context.Context, float64) (float64, error)) ([]float64, error) {
	if fn == nil {
		return nil, apperr.Validation("async processor must be a function")
	}

	results := make([]float64, len(data))
	errs := make([]error, len(data))

	var wg sync.WaitGroup
	for i, v := range data {
		wg.Add(1)
		go func(i int, v float64) {
			defer wg.Done()
			results[i], errs[i] = fn(ctx, v)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Validate checks every record against the schema. Each missing required
// field and each type mismatch yields one error entry naming the field and
// the record index. Schema fields are checked in name order so the error list
// is deterministic.
func (s *Service) Validate(data []dataset.Record, schema dataset.Schema) dataset.ValidationResult {
	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	errors := []string{}
	for index, item := range data {
		for _, name := range fields {
			spec := schema[name]
			value, present := item[name]
			if spec.Required && !present {
				errors = append(errors, fmt.Sprintf("missing required field '%s' at index %d", name, index))
			}
			if present && jsonTypeName(value) != spec.Type {
				errors = append(errors, fmt.Sprintf(
					"invalid type for field '%s' at index %d: expected %s, got %s",
					name, index, spec.Type, jsonTypeName(value)))
			}
		}
	}

	return dataset.ValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// jsonTypeName names the JSON runtime type of a decoded value.
func jsonTypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
