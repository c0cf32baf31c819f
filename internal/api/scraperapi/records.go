package scraperapi

import (
	"math"
	"strconv"
)

// RawRecord is one unnormalized job as returned by the scraper. Field
// presence and naming vary by source site, so access goes through typed
// accessors that report presence explicitly. A missing key, a null value
// and a NaN number are all treated as absent; an empty string is present.
type RawRecord map[string]interface{}

func (r RawRecord) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if f, isFloat := v.(float64); isFloat && math.IsNaN(f) {
		return false
	}
	return true
}

// String returns the field as text. Numeric and boolean values are
// rendered, so date-like fields survive whichever shape a source uses.
func (r RawRecord) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if math.IsNaN(val) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func (r RawRecord) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}

	f, isFloat := v.(float64)
	if !isFloat || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

func (r RawRecord) Bool(key string) (bool, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return false, false
	}

	b, isBool := v.(bool)
	if !isBool {
		return false, false
	}

	return b, true
}
