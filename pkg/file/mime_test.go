package file_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/file"
)

func TestDefaultMIMETable(t *testing.T) {
	t.Parallel()

	table := file.DefaultMIMETable()
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/svg+xml", "image/webp"}, table.Types())

	// The copy is independent of the package default.
	delete(table, "image/png")
	assert.Contains(t, file.DefaultMIMETable().Types(), "image/png")
}

func TestMIMETableLookup(t *testing.T) {
	t.Parallel()

	table := file.DefaultMIMETable()

	mt, entry, ok := table.Lookup(" IMAGE/PNG ; charset=binary")
	require.True(t, ok)
	assert.Equal(t, "image/png", mt)
	assert.Equal(t, []string{"png"}, entry.Extensions)

	mt, _, ok = table.Lookup("image/gif")
	assert.False(t, ok)
	assert.Equal(t, "image/gif", mt)
}

func TestLoadMIMETable(t *testing.T) {
	t.Parallel()

	t.Run("valid profile", func(t *testing.T) {
		profile := `
types:
  application/pdf:
    extensions: [".PDF"]
    signatures:
      - hex: "25 50 44 46"
  image/webp:
    extensions: [webp]
    signatures:
      - hex: "52494646"
      - offset: 8
        hex: "57454250"
  text/csv:
    extensions: [csv]
    text_prefixes: ["id,"]
`
		table, err := file.LoadMIMETable(strings.NewReader(profile))
		require.NoError(t, err)
		assert.Equal(t, []string{"application/pdf", "image/webp", "text/csv"}, table.Types())

		_, pdf, _ := table.Lookup("application/pdf")
		assert.Equal(t, []string{"pdf"}, pdf.Extensions)
		assert.Equal(t, []byte("%PDF"), pdf.Signatures[0].Magic)

		res := file.ValidateUpload(file.FromBytes("a.webp", "image/webp", webpBytes), file.WithMIMETable(table))
		assert.True(t, res.Valid, res.Message)

		res = file.ValidateUpload(file.FromBytes("a.csv", "text/csv", []byte("id,name\n1,x")), file.WithMIMETable(table))
		assert.True(t, res.Valid, res.Message)
	})

	tests := []struct {
		name    string
		profile string
	}{
		{"malformed yaml", "types: ["},
		{"no types", "types: {}"},
		{"no extensions", "types:\n  image/png:\n    signatures:\n      - hex: \"89\"\n"},
		{"bad hex", "types:\n  image/png:\n    extensions: [png]\n    signatures:\n      - hex: \"zz\"\n"},
		{"negative offset", "types:\n  image/png:\n    extensions: [png]\n    signatures:\n      - offset: -1\n        hex: \"89\"\n"},
		{"no signature", "types:\n  image/png:\n    extensions: [png]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := file.LoadMIMETable(strings.NewReader(tt.profile))
			assert.ErrorIs(t, err, file.ErrInvalidMIMETable)
			assert.Nil(t, table)
		})
	}
}
