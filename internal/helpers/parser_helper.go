package helpers

import (
	"math"
	"os"
	"strconv"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseFiniteFloat parses s as a float64 and reports whether it is a finite
// number. NaN, infinities and parse failures all report false.
func ParseFiniteFloat(s string) (float64, bool) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// EnvInt reads an integer from the environment, falling back to def when
// the variable is unset or malformed.
func EnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
