// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package iata

import (
	"regexp"
	"strings"
)

var alphaRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// IsCode returns true if s looks like an IATA airport code: exactly three
// alphabetic characters. The aviation spreadsheets mix codes with free-text
// city names in the same columns, so this gate runs before any lookup.
func IsCode(s string) bool {
	return alphaRe.MatchString(strings.TrimSpace(s))
}

// Normalize returns the canonical (upper-case, trimmed) form of a code.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CodeInText returns true if the code appears as a whole token in the text.
// Matching is case-insensitive and tokens are split on non-alphanumeric
// chars, so "JED" matches "Jeddah Intl (JED)" but not "jedda".
func CodeInText(code string, text string) bool {
	if code == "" || text == "" {
		return false
	}

	codeLower := strings.ToLower(strings.TrimSpace(code))
	textLower := strings.ToLower(text)

	splitRe := regexp.MustCompile(`[^a-z0-9]+`)
	for _, part := range splitRe.Split(textLower, -1) {
		if part == codeLower {
			return true
		}
	}

	return false
}
