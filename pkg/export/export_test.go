package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:    "Códigos de acceso",
		Subtitle: "Colegio San José",
		Headers:  []string{"grade", "course", "list_number", "full_name", "access_code"},
		Rows: [][]string{
			{"1", "1", "1", "Ana Ruiz", "01101"},
			{"1", "1", "2", "Íñigo Peña", "01102"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "grade,course,list_number,full_name,access_code\n1,1,1,Ana Ruiz,01101\n1,1,2,Íñigo Peña,01102\n", string(out))
}

func TestCSVExporterByteOrderMark(t *testing.T) {
	out, err := NewCSVExporter(WithByteOrderMark()).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, utf8BOM))
	assert.Contains(t, string(out), "Íñigo Peña")
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"only-one"})
	_, err := NewCSVExporter().Render(data)
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths(sampleDataset())
	var total float64
	for _, w := range widths {
		total += w
	}
	assert.InDelta(t, pageWidth, total, 0.001)
	assert.Greater(t, widths[3], widths[1])
}
