package httpapi

import (
	"net/http"

	"github.com/qalabs/reporting-demo-api/internal/app/domain/dataset"
	"github.com/qalabs/reporting-demo-api/internal/app/metrics"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

func (h *handler) dataProcess(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data *[]float64 `json:"data"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("process", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("process", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	metrics.RecordDataOp("process", true)
	writeJSON(w, http.StatusOK, h.app.Data.Process(*payload.Data))
}

func (h *handler) dataFilter(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data      *[]float64 `json:"data"`
		Condition struct {
			Type  string  `json:"type"`
			Value float64 `json:"value"`
		} `json:"condition"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("filter", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("filter", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	value := payload.Condition.Value
	var predicate func(float64) bool
	switch payload.Condition.Type {
	case "greater":
		predicate = func(item float64) bool { return item > value }
	case "less":
		predicate = func(item float64) bool { return item < value }
	case "equal":
		predicate = func(item float64) bool { return item == value }
	default:
		metrics.RecordDataOp("filter", false)
		writeError(w, apperr.Validation("invalid condition type"))
		return
	}

	filtered, err := h.app.Data.Filter(*payload.Data, predicate)
	if err != nil {
		metrics.RecordDataOp("filter", false)
		writeError(w, err)
		return
	}
	metrics.RecordDataOp("filter", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{"filtered": filtered})
}

func (h *handler) dataTransform(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data      *[]float64 `json:"data"`
		Operation string     `json:"operation"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("transform", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("transform", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	var transformer func(float64) float64
	switch payload.Operation {
	case "double":
		transformer = func(item float64) float64 { return item * 2 }
	case "square":
		transformer = func(item float64) float64 { return item * item }
	case "increment":
		transformer = func(item float64) float64 { return item + 1 }
	default:
		metrics.RecordDataOp("transform", false)
		writeError(w, apperr.Validation("invalid operation"))
		return
	}

	transformed, err := h.app.Data.Transform(*payload.Data, transformer)
	if err != nil {
		metrics.RecordDataOp("transform", false)
		writeError(w, err)
		return
	}
	metrics.RecordDataOp("transform", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{"transformed": transformed})
}

func (h *handler) dataSort(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data  *[]dataset.Record `json:"data"`
		Field string            `json:"field"`
		Order string            `json:"order"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("sort", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("sort", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	metrics.RecordDataOp("sort", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sorted": h.app.Data.Sort(*payload.Data, payload.Field, payload.Order),
	})
}

func (h *handler) dataGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data *[]dataset.Record `json:"data"`
		Key  string            `json:"key"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("group", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("group", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	metrics.RecordDataOp("group", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"grouped": h.app.Data.GroupBy(*payload.Data, payload.Key),
	})
}

func (h *handler) dataValidate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Data   *[]dataset.Record `json:"data"`
		Schema dataset.Schema    `json:"schema"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		metrics.RecordDataOp("validate", false)
		writeError(w, err)
		return
	}
	if payload.Data == nil {
		metrics.RecordDataOp("validate", false)
		writeError(w, apperr.Validation("data must be an array"))
		return
	}

	metrics.RecordDataOp("validate", true)
	writeJSON(w, http.StatusOK, h.app.Data.Validate(*payload.Data, payload.Schema))
}
