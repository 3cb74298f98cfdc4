// Package color converts lighting colors between their wire encodings and the
// canonical #RRGGBB form held in memory.
//
// The lighting service has stored colors as raw integers, as "#rrggbb",
// "rrggbb", "0xrrggbb" and as decimal strings. Decode accepts all of them and
// never fails: anything it cannot read degrades to a caller supplied fallback.
package color

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Canonical is a color in the form #RRGGBB with uppercase hex digits.
type Canonical string

// Max is the largest encodable color, 0xFFFFFF.
const Max = 0xFFFFFF

var (
	canonicalPattern   = regexp.MustCompile(`^#[0-9A-F]{6}$`)
	hashHexPattern     = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	bareHexPattern     = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	prefixedHexPattern = regexp.MustCompile(`^0[xX][0-9A-Fa-f]{6}$`)
	decimalPattern     = regexp.MustCompile(`^[0-9]+$`)
)

// Decode converts a wire color into its canonical form. The first matching
// rule wins:
//
//  1. numbers are rounded, clamped to [0, Max] and formatted
//  2. "#" followed by 6 hex digits, any case
//  3. exactly 6 hex digits
//  4. "0x" followed by 6 hex digits
//  5. decimal digits, read as a base-10 number and treated like rule 1
//
// Everything else, including nil, NaN and unsupported types, returns fallback.
func Decode(raw any, fallback Canonical) Canonical {
	switch v := raw.(type) {
	case nil:
		return fallback
	case Canonical:
		return parseOr(string(v), fallback)
	case string:
		return parseOr(v, fallback)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return FromInt(i)
		}
		if f, err := v.Float64(); err == nil {
			return fromFloat(f, fallback)
		}
		return fallback
	case int:
		return FromInt(int64(v))
	case int8:
		return FromInt(int64(v))
	case int16:
		return FromInt(int64(v))
	case int32:
		return FromInt(int64(v))
	case int64:
		return FromInt(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return fromUint(uint64(v))
	case uint16:
		return fromUint(uint64(v))
	case uint32:
		return fromUint(uint64(v))
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v), fallback)
	case float64:
		return fromFloat(v, fallback)
	default:
		return fallback
	}
}

// Parse reads a textual color using the string rules of Decode (2 to 5).
// It reports false when the text is not a color. Surrounding whitespace is ignored.
func Parse(s string) (Canonical, bool) {
	s = strings.TrimSpace(s)
	switch {
	case hashHexPattern.MatchString(s):
		return Canonical(strings.ToUpper(s)), true
	case bareHexPattern.MatchString(s):
		return Canonical("#" + strings.ToUpper(s)), true
	case prefixedHexPattern.MatchString(s):
		return Canonical("#" + strings.ToUpper(s[2:])), true
	case decimalPattern.MatchString(s):
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			// Only overflow can fail here; the value is above Max anyway.
			return FromInt(Max), true
		}
		return fromUint(n), true
	}
	return "", false
}

// Valid reports whether s is already in canonical form.
func Valid(s string) bool {
	return canonicalPattern.MatchString(s)
}

// FromInt clamps v to [0, Max] and formats it.
func FromInt(v int64) Canonical {
	if v < 0 {
		v = 0
	}
	if v > Max {
		v = Max
	}
	return Canonical(fmt.Sprintf("#%06X", v))
}

// Encode returns the numeric wire value of a canonical color.
// It panics when c is not canonical; values produced by Decode and Parse
// always are.
func Encode(c Canonical) int {
	if !Valid(string(c)) {
		panic(fmt.Sprintf("color: Encode called with non-canonical value %q", string(c)))
	}
	n, _ := strconv.ParseInt(string(c[1:]), 16, 32)
	return int(n)
}

func parseOr(s string, fallback Canonical) Canonical {
	if c, ok := Parse(s); ok {
		return c
	}
	return fallback
}

func fromUint(v uint64) Canonical {
	if v > Max {
		v = Max
	}
	return FromInt(int64(v))
}

// fromFloat rounds half up and clamps to [0, Max].
func fromFloat(f float64, fallback Canonical) Canonical {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	r := math.Floor(f + 0.5)
	if r < 0 {
		return FromInt(0)
	}
	if r > Max {
		return FromInt(Max)
	}
	return FromInt(int64(r))
}
