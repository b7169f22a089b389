package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dps-tool/dps/internal/fields"
)

func TestNormalize_AllFieldsAlwaysPresent(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{name: "empty record", raw: Raw{}},
		{name: "nil record", raw: nil},
		{name: "partial record", raw: Raw{"ID": "abc123", "Image": "nginx"}},
		{name: "unknown keys only", raw: Raw{"Mystery": "x", "Whatever": 42}},
		{name: "malformed values", raw: Raw{"ID": 12.5, "Status": true, "Ports": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.raw)
			require.Len(t, n, len(fields.Ordered))
			for _, f := range fields.Ordered {
				_, ok := n[f.Name]
				assert.True(t, ok, "missing canonical field %s", f.Name)
			}
		})
	}
}

func TestNormalize_NoRawKeyLeaks(t *testing.T) {
	n := Normalize(Raw{"ID": "abc", "Mystery": "leak", "RunningFor": "3 hours"})
	for key := range n {
		_, ok := fields.Canonical(string(key))
		assert.True(t, ok, "non-canonical key %s leaked through", key)
	}
}

func TestNormalize_Aliases(t *testing.T) {
	n := Normalize(Raw{
		"Img":     "ubuntu:24.04",
		"Cmd":     "/bin/bash",
		"Created": "2 days ago",
		"Name":    "web-1",
		"Publish": "80/tcp",
		"Label":   "env=prod",
	})

	assert.Equal(t, "ubuntu:24.04", n[fields.Image])
	assert.Equal(t, "/bin/bash", n[fields.Command])
	assert.Equal(t, "2 days ago", n[fields.CreatedAt])
	assert.Equal(t, "web-1", n[fields.Names])
	assert.Equal(t, "80/tcp", n[fields.Ports])
	assert.Equal(t, "env=prod", n[fields.Labels])
}

func TestNormalize_CanonicalKeyWinsOverAlias(t *testing.T) {
	n := Normalize(Raw{"Image": "primary", "Img": "alias"})
	assert.Equal(t, "primary", n[fields.Image])
}

func TestNormalize_ScalarConversion(t *testing.T) {
	n := Normalize(Raw{"Size": float64(1024), "ID": "abc"})
	assert.Equal(t, "1024", n[fields.Size])
}

func TestNormalize_HealthFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "healthy", status: "Up 3 hours (healthy)", want: "healthy"},
		{name: "unhealthy", status: "Up 10 minutes (unhealthy)", want: "unhealthy"},
		{name: "starting", status: "Up 2 seconds (health: starting)", want: "starting"},
		{name: "no parenthesis", status: "Up 3 hours", want: ""},
		{name: "unrelated parenthesis", status: "Exited (137) 2 hours ago", want: ""},
		{name: "empty status", status: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(Raw{"Status": tt.status})
			assert.Equal(t, tt.want, n[fields.Health])
		})
	}
}

func TestNormalize_ExplicitHealthNotOverridden(t *testing.T) {
	n := Normalize(Raw{"Health": "unhealthy", "Status": "Up 3 hours (healthy)"})
	assert.Equal(t, "unhealthy", n[fields.Health])
}

func TestNormalize_NestedHealthStructure(t *testing.T) {
	n := Normalize(Raw{"Health": map[string]any{"Status": "healthy", "FailingStreak": float64(0)}})
	assert.Equal(t, "healthy", n[fields.Health])
}

func TestDecodeList(t *testing.T) {
	t.Run("json lines", func(t *testing.T) {
		data := []byte(`{"ID":"abc","Image":"nginx"}` + "\n" + `{"ID":"def","Image":"redis"}` + "\n")
		raws, err := DecodeList(data)
		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, "abc", raws[0]["ID"])
		assert.Equal(t, "def", raws[1]["ID"])
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		data := []byte("\n" + `{"ID":"abc"}` + "\n\n" + `{"ID":"def"}` + "\n\n")
		raws, err := DecodeList(data)
		require.NoError(t, err)
		assert.Len(t, raws, 2)
	})

	t.Run("array form", func(t *testing.T) {
		raws, err := DecodeList([]byte(`[{"ID":"abc"},{"ID":"def"}]`))
		require.NoError(t, err)
		assert.Len(t, raws, 2)
	})

	t.Run("empty output", func(t *testing.T) {
		raws, err := DecodeList([]byte("  \n "))
		require.NoError(t, err)
		assert.Empty(t, raws)
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := DecodeList([]byte(`{"ID":"abc"}` + "\n" + `{broken`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "{broken")
	})
}
