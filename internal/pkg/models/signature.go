package models

import (
	"sort"
	"strings"
)

// signatureSeparator joins the sorted team names of a signature.
const signatureSeparator = "|"

// noisePrefixes are league/language decorations that vary per feed and must
// not influence grouping ("NHL: Rangers vs Bruins" and "Rangers vs Bruins"
// are the same match).
var noisePrefixes = []string{"nhl:", "en español"}

// NormalizeTeamName lower-cases a team name and strips the decorations feeds
// attach: known noisy prefixes and any trailing " - <detail>" suffix.
func NormalizeTeamName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, p := range noisePrefixes {
		s = strings.ReplaceAll(s, p, "")
	}
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// TeamSignature derives the order-independent dedup key for a set of team
// names: normalized names, sorted, joined with a fixed separator. Time is
// deliberately not part of the key; feeds frequently disagree on kick-off
// time for the same match. Returns "" when no usable name survives
// normalization.
func TeamSignature(teams []Team) string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		if n := NormalizeTeamName(t.Name); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return strings.Join(names, signatureSeparator)
}
