// Package fields defines the canonical container display fields. One
// declarative table drives flag registration, column resolution, filter key
// lookup, and record normalization, so per-field knowledge lives in exactly
// one place.
package fields

import "strings"

// Name is a canonical field name. It doubles as the primary key docker uses
// in its `ps --format json` output.
type Name string

// Canonical fields, in display order.
const (
	ID        Name = "ID"
	Image     Name = "Image"
	Command   Name = "Command"
	CreatedAt Name = "CreatedAt"
	Status    Name = "Status"
	Ports     Name = "Ports"
	Names     Name = "Names"
	Size      Name = "Size"
	Health    Name = "Health"
	Labels    Name = "Labels"
)

// Field describes one canonical column.
type Field struct {
	Name    Name     // canonical name, also the primary raw JSON key
	Header  string   // table header text
	Flag    string   // --<Flag> shows the column, --no-<Flag> hides it
	Aliases []string // alternate raw JSON keys accepted for this field
}

// Ordered is the canonical field order. Column order in the rendered table
// is always derived from this slice; it must never depend on map iteration.
var Ordered = []Field{
	{Name: ID, Header: "ID", Flag: "id"},
	{Name: Image, Header: "Image", Flag: "image", Aliases: []string{"Img"}},
	{Name: Command, Header: "Command", Flag: "command", Aliases: []string{"Cmd"}},
	{Name: CreatedAt, Header: "Created", Flag: "created", Aliases: []string{"Created"}},
	{Name: Status, Header: "Status", Flag: "status"},
	{Name: Ports, Header: "Ports", Flag: "port", Aliases: []string{"Port", "Publish"}},
	{Name: Names, Header: "Names", Flag: "name", Aliases: []string{"Name"}},
	{Name: Size, Header: "Size", Flag: "size"},
	{Name: Health, Header: "Health", Flag: "health"},
	{Name: Labels, Header: "Labels", Flag: "label", Aliases: []string{"Label"}},
}

// Defaults is the column set shown when no selection flags are given.
// Size, Health and Labels are opt-in.
var Defaults = []Name{ID, Image, Command, CreatedAt, Status, Ports, Names}

// lookup maps every accepted spelling (canonical name, header, flag name,
// alias; lowercased) to its canonical field name.
var lookup = buildLookup()

func buildLookup() map[string]Name {
	m := make(map[string]Name)
	for _, f := range Ordered {
		m[strings.ToLower(string(f.Name))] = f.Name
		m[strings.ToLower(f.Header)] = f.Name
		m[strings.ToLower(f.Flag)] = f.Name
		for _, a := range f.Aliases {
			m[strings.ToLower(a)] = f.Name
		}
	}
	return m
}

// Canonical resolves a user- or runtime-supplied key to its canonical field
// name, case-insensitively. Accepts canonical names, display headers, flag
// names, and raw JSON aliases.
func Canonical(s string) (Name, bool) {
	n, ok := lookup[strings.ToLower(strings.TrimSpace(s))]
	return n, ok
}

// Get returns the field descriptor for a canonical name. Callers are
// expected to pass names obtained from Ordered or Canonical.
func Get(n Name) Field {
	for _, f := range Ordered {
		if f.Name == n {
			return f
		}
	}
	return Field{Name: n, Header: string(n), Flag: strings.ToLower(string(n))}
}

// Header returns the display header for a canonical name.
func Header(n Name) string {
	return Get(n).Header
}
