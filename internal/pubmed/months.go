// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strconv"
	"strings"
)

// monthNames maps the lowercase three-letter prefix of a month name to its
// two-digit number. PubMed history and publication dates carry months as
// numbers ("3"), abbreviations ("Mar"), or full names ("March").
var monthNames = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// MonthNumber maps a month token to a two-digit month. It accepts numeric
// ("3", "03"), abbreviated ("Mar"), and full ("March") forms. The second
// return value is false for tokens that do not denote a month; callers
// treat that as a defined fallback, never an error.
func MonthNumber(token string) (string, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", false
	}

	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > 12 {
			return "", false
		}
		return padMonth(n), true
	}

	if len(token) >= 3 {
		if num, ok := monthNames[token[:3]]; ok {
			return num, true
		}
	}
	return "", false
}

func padMonth(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
