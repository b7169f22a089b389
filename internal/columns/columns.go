// Package columns resolves the layered column-selection flags into the final
// ordered column list. Precedence is an explicit merge, not an artifact of
// flag evaluation order.
package columns

import (
	apperrors "github.com/dps-tool/dps/internal/errors"
	"github.com/dps-tool/dps/internal/fields"
)

// Options carries the user's column selection, already split per flag layer.
type Options struct {
	// Show holds the fields named by explicit --<field> flags, in canonical
	// order. When non-empty it replaces the base set entirely.
	Show []fields.Name
	// Hide holds the fields named by explicit --no-<field> flags.
	Hide []fields.Name
	// Columns holds the raw --columns tokens, order preserved. When non-empty
	// (and Show is empty) it replaces the default base set.
	Columns []string
	// HideColumns holds the raw --hide-column tokens. Always subtracts,
	// applied last.
	HideColumns []string
}

// Resolve merges the selection layers into the final ordered column list.
//
// Precedence, highest first:
//  1. any hide (--no-<field> or --hide-column) removes the field, no matter
//     how it was added
//  2. explicit --<field> show flags define the base set exactly, discarding
//     both --columns and the defaults
//  3. --columns defines the base set in its own order
//  4. the default column set
//
// Unknown tokens in Columns or HideColumns and an empty final list are hard
// errors, detected before any fetch or output happens.
func Resolve(opts Options) ([]fields.Name, error) {
	base, err := baseSet(opts)
	if err != nil {
		return nil, err
	}

	hidden := make(map[fields.Name]bool, len(opts.Hide)+len(opts.HideColumns))
	hiddenTokens := make([]string, 0, len(opts.Hide)+len(opts.HideColumns))
	for _, n := range opts.Hide {
		hidden[n] = true
		hiddenTokens = append(hiddenTokens, string(n))
	}
	for _, tok := range opts.HideColumns {
		n, ok := fields.Canonical(tok)
		if !ok {
			return nil, &apperrors.InvalidColumnError{Token: tok, Flag: "hide-column"}
		}
		hidden[n] = true
		hiddenTokens = append(hiddenTokens, tok)
	}

	final := make([]fields.Name, 0, len(base))
	for _, n := range base {
		if !hidden[n] {
			final = append(final, n)
		}
	}

	if len(final) == 0 {
		return nil, &apperrors.EmptyColumnSetError{Hidden: hiddenTokens}
	}
	return final, nil
}

// baseSet picks the pre-hide column list: explicit shows dominate --columns,
// which dominates the defaults. Duplicates keep their first position.
func baseSet(opts Options) ([]fields.Name, error) {
	if len(opts.Show) > 0 {
		return dedupe(opts.Show), nil
	}

	if len(opts.Columns) > 0 {
		names := make([]fields.Name, 0, len(opts.Columns))
		for _, tok := range opts.Columns {
			n, ok := fields.Canonical(tok)
			if !ok {
				return nil, &apperrors.InvalidColumnError{Token: tok, Flag: "columns"}
			}
			names = append(names, n)
		}
		return dedupe(names), nil
	}

	base := make([]fields.Name, len(fields.Defaults))
	copy(base, fields.Defaults)
	return base, nil
}

func dedupe(names []fields.Name) []fields.Name {
	seen := make(map[fields.Name]bool, len(names))
	out := make([]fields.Name, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
