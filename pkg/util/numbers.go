package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatOrNaN parses a numeric string. Blank, "." and unparsable input yield NaN.
func ParseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
