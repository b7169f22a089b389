// Package filters implements the client-side --find filter: key=pattern
// predicates evaluated against normalized records after the runtime call.
package filters

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/dps-tool/dps/internal/fields"
	"github.com/dps-tool/dps/internal/records"
)

// Predicate matches one canonical field against a pattern. Patterns with
// glob metacharacters (* ? [...]) match the whole value case-insensitively;
// anything else is a case-insensitive substring match.
type Predicate struct {
	Field   fields.Name
	Pattern string

	re *regexp.Regexp // compiled glob, nil for substring predicates
}

// Parse splits a raw --find argument on commas and whitespace into
// predicates. Malformed tokens and unknown keys are skipped with a warning
// so the filter stays usable across runtime schema drift.
func Parse(spec string) []Predicate {
	tokens := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	preds := make([]Predicate, 0, len(tokens))
	for _, tok := range tokens {
		key, pattern, found := strings.Cut(tok, "=")
		if !found {
			logrus.WithField("condition", tok).Warn("Invalid find condition, expected key=pattern. Skipping.")
			continue
		}

		name, ok := fields.Canonical(key)
		if !ok {
			logrus.WithField("key", key).Warn("Find filter key not recognized. Skipping.")
			continue
		}

		preds = append(preds, newPredicate(name, pattern))
	}
	return preds
}

func newPredicate(name fields.Name, pattern string) Predicate {
	p := Predicate{Field: name, Pattern: pattern}
	if strings.ContainsAny(pattern, "*?[") {
		re, err := regexp.Compile(globToRegexp(pattern))
		if err != nil {
			// Malformed character class, fall back to substring matching.
			logrus.WithField("pattern", pattern).Debug("Glob pattern did not compile, matching as substring")
			return p
		}
		p.re = re
	}
	return p
}

// Match reports whether the record's field value satisfies the predicate.
// Values are always the full, untruncated ones.
func (p Predicate) Match(rec records.Normalized) bool {
	value := rec[p.Field]
	if p.re != nil {
		return p.re.MatchString(value)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(p.Pattern))
}

// Apply keeps the records matching every predicate, preserving input order.
// An empty predicate set keeps everything.
func Apply(recs []records.Normalized, preds []Predicate) []records.Normalized {
	if len(preds) == 0 {
		return recs
	}

	out := make([]records.Normalized, 0, len(recs))
	for _, rec := range recs {
		matched := true
		for _, p := range preds {
			if !p.Match(rec) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rec)
		}
	}

	logrus.WithFields(logrus.Fields{
		"before": len(recs),
		"after":  len(out),
	}).Debug("Applied find filter")
	return out
}

// globToRegexp translates a glob pattern into an anchored case-insensitive
// regular expression with fnmatch semantics: * matches any run of
// characters (including separators), ? a single character, and [...] a
// character class ([!...] negates).
func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("(?is)^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			class := string(runes[i+1 : end])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString("$")
	return b.String()
}

// classEnd returns the index of the closing bracket of a character class
// starting at open, or -1 when the class is never closed. A ] directly after
// the opening bracket (or after negation) is a literal member.
func classEnd(runes []rune, open int) int {
	i := open + 1
	if i < len(runes) && runes[i] == '!' {
		i++
	}
	if i < len(runes) && runes[i] == ']' {
		i++
	}
	for ; i < len(runes); i++ {
		if runes[i] == ']' {
			return i
		}
	}
	return -1
}
