// Package profanity adapts a word-list detector to the hub's content check.
package profanity

import (
	"strings"

	goaway "github.com/TwiN/go-away"
)

// commonWords contain a listed profanity but are everyday vocabulary. The
// detector strips spaces, so they are matched as fragments.
var commonWords = []string{
	"assembl",
	"assess",
	"asset",
	"assort",
}

// Filter reports whether chat text contains a disallowed word.
type Filter struct {
	detector *goaway.ProfanityDetector
}

// New builds a filter from the built-in dictionary extended with banned
// words. Allowed words are exempt even when they contain a banned one.
func New(banned, allowed []string) *Filter {
	profanities := append(append([]string{}, goaway.DefaultProfanities...), normalize(banned)...)
	falsePositives := append(append([]string{}, goaway.DefaultFalsePositives...), commonWords...)
	falsePositives = append(falsePositives, normalize(allowed)...)

	detector := goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(true).
		WithCustomDictionary(profanities, falsePositives, goaway.DefaultFalseNegatives)

	return &Filter{detector: detector}
}

// IsProfane reports whether text may not be relayed.
func (f *Filter) IsProfane(text string) bool {
	return f.detector.IsProfane(text)
}

func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
