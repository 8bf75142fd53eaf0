package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryFloat coerces an optional numeric query parameter. Returns nil
// when the parameter is absent.
func ParseQueryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseQueryRange reads a "min,max" pair from a query parameter. Returns nil
// when the parameter is absent.
func ParseQueryRange(r *http.Request, key string) (*[2]float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range parameter must be min,max").WithDetails(map[string]any{"field": key})
	}
	var bounds [2]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "range bounds must be numeric").WithDetails(map[string]any{"field": key})
		}
		bounds[i] = value
	}
	if bounds[0] > bounds[1] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range lower bound exceeds upper bound").WithDetails(map[string]any{"field": key})
	}
	return &bounds, nil
}
