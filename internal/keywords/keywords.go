package keywords

import (
	"regexp"
	"strings"
)

const (
	maxKeywords     = 10
	maxPhraseLength = 50
	minOccurrences  = 2
)

// Phrase templates viewers actually use when naming the film in a comment.
// The captured span is the candidate title.
var phrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)this is from\s+"?([^".!?\n,]+)"?`),
	regexp.MustCompile(`(?i)the movie\s+"?([^".!?\n,]+)"?`),
	regexp.MustCompile(`(?i)the film\s+"?([^".!?\n,]+)"?`),
	regexp.MustCompile(`(?i)scene from\s+"?([^".!?\n,]+)"?`),
	regexp.MustCompile(`\b([A-Z][\w']*(?:\s+[A-Z][\w']*)*)\s+(?i:movie|film)\b`),
}

// Runs of Title-Case words. Not a named-entity recognizer: actor names and
// coincidental capitalization are expected false positives.
var capitalizedRun = regexp.MustCompile(`\b[A-Z][\w']*(?:\s+[A-Z][\w']*)*\b`)

var stopwords = map[string]struct{}{
	"the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"my": {}, "your": {}, "his": {}, "her": {}, "its": {}, "our": {}, "their": {},
	"a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {}, "so": {},
	"what": {}, "when": {}, "where": {}, "who": {}, "why": {}, "how": {},
	"is": {}, "was": {}, "not": {}, "no": {}, "yes": {}, "just": {},
	"omg": {}, "lol": {}, "wow": {},
}

// Extract mines candidate title-like phrases from raw viewer comments. Two
// heuristics run over the text and their results are unioned into a
// deduplicated set capped at 10 entries. Output order is not guaranteed.
func Extract(comments []string) []string {
	if len(comments) == 0 {
		return nil
	}
	text := strings.Join(comments, "\n")

	seen := make(map[string]struct{})
	var out []string
	add := func(phrase string) {
		if len(out) >= maxKeywords {
			return
		}
		key := strings.ToLower(strings.TrimSpace(phrase))
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, phrase)
	}

	for _, phrase := range phraseMatches(text) {
		add(phrase)
	}
	for _, phrase := range frequentCapitalized(text) {
		add(phrase)
	}
	return out
}

func phraseMatches(text string) []string {
	var phrases []string
	for _, pattern := range phrasePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) > maxPhraseLength {
				candidate = strings.TrimSpace(candidate[:maxPhraseLength])
			}
			if len(candidate) > 2 {
				phrases = append(phrases, candidate)
			}
		}
	}
	return phrases
}

func frequentCapitalized(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, run := range capitalizedRun.FindAllString(text, -1) {
		phrase := strings.ToLower(strings.TrimSpace(run))
		if len(phrase) <= 2 || allStopwords(phrase) {
			continue
		}
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	var frequent []string
	for _, phrase := range order {
		if counts[phrase] >= minOccurrences {
			frequent = append(frequent, phrase)
		}
	}
	return frequent
}

func allStopwords(phrase string) bool {
	for _, word := range strings.Fields(phrase) {
		if _, ok := stopwords[word]; !ok {
			return false
		}
	}
	return true
}
