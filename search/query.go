package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the longest query, in characters after trimming, that
// will be evaluated. Longer queries match nothing.
const MaxQueryLength = 1000

// Operator combines the terms of a query.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

var (
	phrasePattern   = regexp.MustCompile(`"([^"]+)"`)
	andPattern      = regexp.MustCompile(`(?i)\bAND\b`)
	operatorPattern = regexp.MustCompile(`(?i)\b(?:AND|OR)\b`)
)

// Query is a parsed search string.
type Query struct {
	// Terms are lowercased, trimmed, non-empty text segments.
	Terms []string `json:"terms"`
	// Operator applies to every term.
	Operator Operator `json:"operator"`
	// Phrases are the lowercased contents of quoted spans.
	Phrases []string `json:"phrases"`
	// ExceedsLimit is set when the query was too long to evaluate.
	ExceedsLimit bool `json:"exceedsLimit,omitempty"`
}

// ParseQuery turns a raw search string into a Query.
func ParseQuery(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > MaxQueryLength {
		return Query{Terms: []string{}, Operator: OperatorOr, Phrases: []string{}, ExceedsLimit: true}
	}

	phrases := []string{}
	remaining := trimmed
	for _, match := range phrasePattern.FindAllStringSubmatch(trimmed, -1) {
		phrases = append(phrases, strings.ToLower(match[1]))
		remaining = strings.Replace(remaining, match[0], "", 1)
	}

	operator := OperatorOr
	if andPattern.MatchString(remaining) {
		operator = OperatorAnd
	}

	terms := []string{}
	for _, segment := range operatorPattern.Split(remaining, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		terms = append(terms, strings.ToLower(segment))
	}

	return Query{Terms: terms, Operator: operator, Phrases: phrases}
}

// IsEmpty reports whether the query has neither terms nor phrases.
func (q Query) IsEmpty() bool {
	return len(q.Terms) == 0 && len(q.Phrases) == 0
}

// Matches reports whether text satisfies the query.
//
// When phrases are present at least one must occur in text, otherwise the
// text is rejected regardless of terms. A query with phrases but no terms
// matches on the phrase alone.
func (q Query) Matches(text string) bool {
	lower := strings.ToLower(text)

	if len(q.Phrases) > 0 {
		found := false
		for _, phrase := range q.Phrases {
			if strings.Contains(lower, phrase) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(q.Terms) == 0 {
		return len(q.Phrases) > 0
	}

	if q.Operator == OperatorAnd {
		for _, term := range q.Terms {
			if !strings.Contains(lower, term) {
				return false
			}
		}
		return true
	}

	for _, term := range q.Terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
