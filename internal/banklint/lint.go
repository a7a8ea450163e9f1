// Package banklint checks question banks for content problems that
// make questions unanswerable or guessable, such as a correct answer
// that is a length giveaway against its distractors.
package banklint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/quizdrill/internal/bank"
)

// Severity ranks a finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one lint result attached to a question (or the bank when
// QuestionID is empty).
type Finding struct {
	QuestionID string
	Rule       string
	Severity   Severity
	Message    string
}

// lengthCueRatio flags a correct answer whose word count exceeds the
// median distractor length by this factor (or is shorter by its
// inverse). Mirrors the padding threshold the bank fixer tools used.
const lengthCueRatio = 1.6

// Lint runs every rule over a parsed bank.
func Lint(b *bank.Bank) []Finding {
	var findings []Finding

	seen := make(map[string]bool)
	for i := range b.Questions {
		q := &b.Questions[i]

		if seen[q.ID] {
			findings = append(findings, Finding{
				QuestionID: q.ID,
				Rule:       "duplicate-id",
				Severity:   SeverityError,
				Message:    "question id appears more than once",
			})
		}
		seen[q.ID] = true

		findings = append(findings, lintQuestion(q)...)
	}
	return findings
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func lintQuestion(q *bank.Question) []Finding {
	var findings []Finding
	add := func(rule string, sev Severity, msg string) {
		findings = append(findings, Finding{QuestionID: q.ID, Rule: rule, Severity: sev, Message: msg})
	}

	if strings.TrimSpace(q.Text) == "" {
		add("missing-text", SeverityError, "question has no text")
	}
	if q.CorrectAnswer == "" {
		add("missing-answer", SeverityError, "question has no correct answer")
	}
	if len(q.Options) < 2 {
		add("too-few-options", SeverityError,
			fmt.Sprintf("only %d options; a multiple-choice question needs at least 2", len(q.Options)))
	}

	if dups := caseDuplicates(q.Options); len(dups) > 0 {
		add("near-duplicate-options", SeverityWarning,
			"options differ only by case: "+strings.Join(dups, ", "))
	}

	if len(q.Topics) == 0 {
		add("no-topic", SeverityWarning, "question has no topic; it will aggregate under General")
	}

	if cue := lengthCue(q); cue != "" {
		add("length-cue", SeverityWarning, cue)
	}

	return findings
}

// caseDuplicates returns options that collide when lowercased.
func caseDuplicates(options []string) []string {
	byFold := make(map[string]string)
	var dups []string
	for _, o := range options {
		folded := strings.ToLower(strings.TrimSpace(o))
		if prev, ok := byFold[folded]; ok && prev != o {
			dups = append(dups, o)
		}
		byFold[folded] = o
	}
	return dups
}

// lengthCue detects a correct answer that stands out by word count
// against the median distractor, a classic giveaway. Returns "" when
// the lengths are unremarkable.
func lengthCue(q *bank.Question) string {
	if q.CorrectAnswer == "" || len(q.Options) < 3 {
		return ""
	}

	correctWords := wordCount(q.CorrectAnswer)
	var distractorWords []int
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			continue
		}
		distractorWords = append(distractorWords, wordCount(o))
	}
	if len(distractorWords) == 0 {
		return ""
	}

	med := median(distractorWords)
	if med == 0 {
		return ""
	}

	ratio := float64(correctWords) / med
	switch {
	case ratio > lengthCueRatio:
		return fmt.Sprintf("correct answer (%d words) is much longer than the median distractor (%.1f words)", correctWords, med)
	case ratio < 1/lengthCueRatio:
		return fmt.Sprintf("correct answer (%d words) is much shorter than the median distractor (%.1f words)", correctWords, med)
	}
	return ""
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
