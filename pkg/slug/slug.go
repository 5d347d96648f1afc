// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns manga titles into lowercase ASCII path segments
// such as "one-piece".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds a slug so a suffix like "-6" still fits the column.
const MaxLength = 96

// stripMarks decomposes accented letters and drops the combining marks,
// so "Pokémon" reads as "Pokemon".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From returns the slug for title. Runs of anything other than ASCII
// letters and digits become a single hyphen. Titles with no such
// characters produce "".
func From(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String())
}

// truncate cuts s to MaxLength, backing up to the last hyphen when one is
// available so words stay whole.
func truncate(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	s = s[:MaxLength]
	if cut := strings.LastIndexByte(s, '-'); cut > 0 {
		s = s[:cut]
	}
	return strings.TrimRight(s, "-")
}
