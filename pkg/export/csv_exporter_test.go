package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Table{
		Headers: []string{"Date", "Title"},
		Rows: []map[string]string{
			{"Date": "2025-05-15", "Title": "Standup"},
			{"Date": "2025-05-16", "Title": "Lunch, offsite"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Title", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[2], `"Lunch, offsite"`)
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Table{
		Headers: []string{"Date", "Time", "Title"},
		Rows: []map[string]string{
			{"Date": "2025-05-15", "Time": "10:00", "Title": "Standup"},
		},
	}

	out, err := NewPDFExporter().Render(data, "EventFlow Agenda - May 2025")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
