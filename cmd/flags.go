package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/dps-tool/dps/internal/fields"
)

// The per-column show/hide flag pairs are generated from the canonical field
// table rather than hand-written, so the flag surface always tracks the
// table and the resolver sees the same names.

func registerColumnFlags(fs *pflag.FlagSet) {
	for _, f := range fields.Ordered {
		fs.Bool(f.Flag, false, fmt.Sprintf("show the %s column (any such flag shows only the named columns)", f.Header))
		fs.Bool("no-"+f.Flag, false, fmt.Sprintf("hide the %s column", f.Header))
	}
}

// collectColumnFlags reads the per-column booleans back into ordered slices.
// Shows are collected in canonical field order; pflag does not expose the
// order in which flags appeared on the command line.
func collectColumnFlags(fs *pflag.FlagSet) (show, hide []fields.Name) {
	for _, f := range fields.Ordered {
		if v, err := fs.GetBool(f.Flag); err == nil && v {
			show = append(show, f.Name)
		}
		if v, err := fs.GetBool("no-" + f.Flag); err == nil && v {
			hide = append(hide, f.Name)
		}
	}
	return show, hide
}
