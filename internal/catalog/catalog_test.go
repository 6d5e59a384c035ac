package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NotEmpty(t, c.Areas)
	assert.True(t, c.Valid("Direito Civil", "Petição Inicial"))
	assert.True(t, c.Valid("Direito do Trabalho", "Reclamação Trabalhista"))
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectedErr string
	}{
		{
			name:        "empty_catalog",
			yaml:        "areas: []",
			expectedErr: "no legal areas",
		},
		{
			name: "unknown_icon",
			yaml: `
areas:
  - name: Direito Civil
    icon: rocket
    pieces:
      - name: Petição Inicial
`,
			expectedErr: "unknown icon",
		},
		{
			name: "area_without_pieces",
			yaml: `
areas:
  - name: Direito Civil
    icon: scale
    pieces: []
`,
			expectedErr: "no piece types",
		},
		{
			name: "duplicate_area",
			yaml: `
areas:
  - name: Direito Civil
    icon: scale
    pieces:
      - name: Petição Inicial
  - name: Direito Civil
    icon: scale
    pieces:
      - name: Contestação
`,
			expectedErr: "duplicate area",
		},
		{
			name:        "invalid_yaml",
			yaml:        "areas: [unclosed",
			expectedErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
areas:
  - name: Direito Penal
    icon: shield
    pieces:
      - name: Habeas Corpus
        description: Remédio constitucional contra prisão ilegal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	area, ok := c.Area("Direito Penal")
	require.True(t, ok)
	assert.Equal(t, IconShield, area.Icon)

	piece, ok := c.Piece("Direito Penal", "Habeas Corpus")
	require.True(t, ok)
	assert.Contains(t, piece.Description, "constitucional")

	assert.False(t, c.Valid("Direito Penal", "Petição Inicial"))
	assert.False(t, c.Valid("Direito Civil", "Habeas Corpus"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/catalog.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}
