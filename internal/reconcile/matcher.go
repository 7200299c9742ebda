// Package reconcile links free-text job titles to catalog careers.
package reconcile

import (
	"strings"
	"unicode/utf8"
)

const minTokenLen = 3

type Candidate struct {
	ID    int64
	Title string
	Slug  string
}

type preparedCandidate struct {
	id     int64
	tokens []string
	phrase string
}

// Matcher holds a tokenized catalog. Build it once per sync batch.
type Matcher struct {
	candidates []preparedCandidate
}

func NewMatcher(catalog []Candidate) *Matcher {
	m := &Matcher{candidates: make([]preparedCandidate, 0, len(catalog))}
	for _, c := range catalog {
		pc := preparedCandidate{
			id:     c.ID,
			phrase: strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Slug)), "-", " "),
		}
		for _, tok := range strings.Fields(strings.ToLower(c.Title)) {
			if utf8.RuneCountInString(tok) < minTokenLen {
				continue
			}
			pc.tokens = append(pc.tokens, tok)
		}
		m.candidates = append(m.candidates, pc)
	}
	return m
}

// Match returns the best-scoring career for a job title. Each title token
// found in the job title is worth 1, the whole slug phrase is worth 2.
// The first candidate wins ties; a best score of zero is no match.
func (m *Matcher) Match(jobTitle string) (int64, bool) {
	title := strings.ToLower(jobTitle)

	var bestID int64
	bestScore := 0
	for _, c := range m.candidates {
		score := 0
		for _, tok := range c.tokens {
			if strings.Contains(title, tok) {
				score++
			}
		}
		if c.phrase != "" && strings.Contains(title, c.phrase) {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			bestID = c.id
		}
	}

	if bestScore <= 0 {
		return 0, false
	}
	return bestID, true
}

// MatchCareer is a one-off Match against catalog.
func MatchCareer(jobTitle string, catalog []Candidate) (int64, bool) {
	return NewMatcher(catalog).Match(jobTitle)
}
