package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/clustex/internal/domain"
)

// Document is an ingested text file (immutable value object).
// Normalization is applied once at construction.
type Document struct {
	id         string
	raw        string
	normalized string
}

// New creates a Document from an identifier and already-decoded text.
// Decoding bytes into valid text is the caller's responsibility.
func New(id, raw string) Document {
	return Document{id: id, raw: raw, normalized: Normalize(raw)}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Raw returns the original text as supplied.
func (d Document) Raw() string { return d.raw }

// Normalized returns the canonical single-line representation.
func (d Document) Normalized() string { return d.normalized }

// Normalize collapses raw text into a canonical single line: input is split
// on line boundaries, blank lines are dropped, surviving lines are trimmed
// and lowercased, and the result is rejoined with single spaces.
// Normalize(Normalize(x)) == Normalize(x) for any x. An empty result is a
// valid zero-content document.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned = append(cleaned, strings.ToLower(line))
	}
	return strings.Join(cleaned, " ")
}

// ValidateBatch checks a corpus before any vectorization work starts, so a
// single bad input does not waste O(N²) computation. Empty ids are reported
// through a ValidationError listing every offender at once. An empty corpus
// or duplicate ids are configuration failures.
func ValidateBatch(docs []Document) error {
	if len(docs) == 0 {
		return fmt.Errorf("%w: document list is empty", domain.ErrConfiguration)
	}

	var issues []domain.Issue
	for i, d := range docs {
		if d.id == "" {
			issues = append(issues, domain.Issue{
				Reason: fmt.Sprintf("document at position %d has an empty id", i),
			})
		}
	}
	if len(issues) > 0 {
		return domain.NewValidationError(issues)
	}

	seen := make(map[string]bool, len(docs))
	var dups []string
	for _, d := range docs {
		if seen[d.id] {
			dups = append(dups, d.id)
			continue
		}
		seen[d.id] = true
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: duplicate document ids: %s",
			domain.ErrConfiguration, strings.Join(dups, ", "))
	}

	return nil
}
