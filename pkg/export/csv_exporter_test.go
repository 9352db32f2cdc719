package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Name"},
		Rows: []map[string]string{
			{"ID": "1", "Name": "Sneaker"},
			{"ID": "2", "Name": "Boot, leather"},
		},
	}

	payload, err := NewCSVExporter().Render(dataset)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name", lines[0])
	assert.Equal(t, `2,"Boot, leather"`, lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    []map[string]string{{"ID": "1", "Name": "Sneaker"}},
	}

	payload, err := NewPDFExporter().Render(dataset, "Catalog")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
