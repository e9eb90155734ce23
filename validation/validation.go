// Package validation holds form parsers and field checks. Parsers are
// permissive: malformed input yields the supplied default instead of an error.
package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags an empty or blank value.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredID parses a positive identifier, flagging it as required when
// blank and invalid otherwise.
func RequiredID(field, raw string, v Violations) uint {
	if strings.TrimSpace(raw) == "" {
		v[field] = "required"
		return 0
	}
	id, ok := ID(raw)
	if !ok {
		v[field] = "invalid"
	}
	return id
}

// Positive flags zero or negative amounts.
func Positive(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v[field] = "must_be_positive"
	}
}

// Money parses an amount such as "1,250.50". Thousands separators are
// dropped; blank or malformed input returns def.
func Money(raw string, def decimal.Decimal) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// Int parses a whole number; blank or malformed input returns def.
func Int(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// ID parses a positive identifier. ok is false for anything else.
func ID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
