package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dps-tool/dps/internal/errors"
	"github.com/dps-tool/dps/internal/fields"
)

func TestResolve_Defaults(t *testing.T) {
	got, err := Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, fields.Defaults, got)
}

func TestResolve_ExplicitShowReplacesDefaults(t *testing.T) {
	// --id --name shows only those two columns.
	got, err := Resolve(Options{Show: []fields.Name{fields.ID, fields.Names}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.ID, fields.Names}, got)
}

func TestResolve_ExplicitShowPreservesGivenOrder(t *testing.T) {
	got, err := Resolve(Options{Show: []fields.Name{fields.Names, fields.ID, fields.Status}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.Names, fields.ID, fields.Status}, got)
}

func TestResolve_ExplicitHideOnly(t *testing.T) {
	// --no-size alone keeps the defaults minus Size (Size is not a default,
	// so use a default column to observe the subtraction).
	got, err := Resolve(Options{Hide: []fields.Name{fields.Ports}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.ID, fields.Image, fields.Command, fields.CreatedAt, fields.Status, fields.Names}, got)
}

func TestResolve_HideNonDefaultIsNoop(t *testing.T) {
	got, err := Resolve(Options{Hide: []fields.Name{fields.Size}})
	require.NoError(t, err)
	assert.Equal(t, fields.Defaults, got)
}

func TestResolve_ColumnsList(t *testing.T) {
	got, err := Resolve(Options{Columns: []string{"names", "Image", "ID"}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.Names, fields.Image, fields.ID}, got)
}

func TestResolve_ColumnsListAcceptsAliasesAndHeaders(t *testing.T) {
	got, err := Resolve(Options{Columns: []string{"created", "cmd", "publish"}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.CreatedAt, fields.Command, fields.Ports}, got)
}

func TestResolve_UnknownColumnName(t *testing.T) {
	_, err := Resolve(Options{Columns: []string{"Bogus"}})
	require.Error(t, err)

	var colErr *apperrors.InvalidColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Bogus", colErr.Token)
	assert.Contains(t, err.Error(), "Bogus")
}

func TestResolve_UnknownHideColumnName(t *testing.T) {
	_, err := Resolve(Options{HideColumns: []string{"Nope"}})
	require.Error(t, err)

	var colErr *apperrors.InvalidColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Nope", colErr.Token)
}

// Precedence pairs, each tested in isolation.
func TestResolve_PrecedencePairs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []fields.Name
	}{
		{
			name: "show dominates columns",
			opts: Options{Show: []fields.Name{fields.ID}, Columns: []string{"Image", "Names"}},
			want: []fields.Name{fields.ID},
		},
		{
			name: "show dominates defaults",
			opts: Options{Show: []fields.Name{fields.Status}},
			want: []fields.Name{fields.Status},
		},
		{
			name: "columns dominates defaults",
			opts: Options{Columns: []string{"Image"}},
			want: []fields.Name{fields.Image},
		},
		{
			name: "hide-column beats columns",
			opts: Options{Columns: []string{"ID", "Image"}, HideColumns: []string{"Image"}},
			want: []fields.Name{fields.ID},
		},
		{
			name: "hide-column beats explicit show",
			opts: Options{Show: []fields.Name{fields.ID, fields.Names}, HideColumns: []string{"name"}},
			want: []fields.Name{fields.ID},
		},
		{
			name: "no-field beats explicit show of same field",
			opts: Options{Show: []fields.Name{fields.ID, fields.Names}, Hide: []fields.Name{fields.Names}},
			want: []fields.Name{fields.ID},
		},
		{
			name: "no-field beats columns",
			opts: Options{Columns: []string{"ID", "Status"}, Hide: []fields.Name{fields.Status}},
			want: []fields.Name{fields.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_EmptyColumnSet(t *testing.T) {
	_, err := Resolve(Options{
		Show: []fields.Name{fields.ID},
		Hide: []fields.Name{fields.ID},
	})
	require.Error(t, err)

	var emptyErr *apperrors.EmptyColumnSetError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestResolve_HideEverythingFromDefaults(t *testing.T) {
	hide := make([]string, 0, len(fields.Defaults))
	for _, n := range fields.Defaults {
		hide = append(hide, string(n))
	}
	_, err := Resolve(Options{HideColumns: hide})

	var emptyErr *apperrors.EmptyColumnSetError
	require.ErrorAs(t, err, &emptyErr)
	assert.Len(t, emptyErr.Hidden, len(fields.Defaults))
}

func TestResolve_Idempotent(t *testing.T) {
	opts := Options{
		Columns:     []string{"ID", "Names", "Status", "Image"},
		HideColumns: []string{"Status"},
	}
	first, err := Resolve(opts)
	require.NoError(t, err)
	second, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_DuplicatesKeepFirstPosition(t *testing.T) {
	got, err := Resolve(Options{Columns: []string{"ID", "Names", "id"}})
	require.NoError(t, err)
	assert.Equal(t, []fields.Name{fields.ID, fields.Names}, got)
}
