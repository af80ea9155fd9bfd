package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/ignite/ppc-optimizer/internal/dataset"
)

var currencySymbols = []string{"$", "€", "£", "¥", "₹"}

// CleanCurrency parses a money cell such as "$1,234.50". Anything that does
// not parse is 0.
func CleanCurrency(raw string) float64 {
	v := strings.TrimSpace(raw)
	for _, sym := range currencySymbols {
		if strings.HasPrefix(v, sym) {
			v = strings.TrimPrefix(v, sym)
			break
		}
	}
	f, ok := parseFloat(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// CleanPercentage parses a ratio cell such as "12.5%" and returns nil when
// the value is missing or malformed.
func CleanPercentage(raw string) *float64 {
	v := strings.TrimSpace(raw)
	v = strings.TrimSuffix(v, "%")
	f, ok := parseFloat(v)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

// CleanInteger parses a count cell, tolerating thousands separators and float
// renderings ("1,024", "12.0"). The fractional part is truncated; anything
// that does not parse or does not fit an int is 0.
func CleanInteger(raw string) int {
	f, ok := parseFloat(raw)
	if !ok || f < 0 || f >= float64(math.MaxInt) {
		return 0
	}
	return int(f)
}

// CleanID normalizes an identifier cell. Spreadsheet tooling coerces numeric
// IDs to floats, so a trailing ".0" is removed.
func CleanID(raw string) string {
	v := strings.TrimSpace(raw)
	if dataset.IsNull(v) {
		return ""
	}
	return strings.TrimSuffix(v, ".0")
}

func parseFloat(raw string) (float64, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v = strings.TrimSpace(v)
	if dataset.IsNull(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
