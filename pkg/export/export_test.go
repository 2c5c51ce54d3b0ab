package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Code", "Score"},
		Rows: []map[string]string{
			{"Code": "ПМ", "Score": "260"},
			{"Code": "ИВТ", "Score": "241"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(payload), "Code;Score")
	assert.Contains(t, string(payload), "ПМ;260")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	payload, err := NewXLSXExporter().Render([]Sheet{
		{Name: "ПМ_01.08", Data: sampleDataset()},
		{Name: "ИВТ_02.08", Data: sampleDataset()},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"ПМ_01.08", "ИВТ_02.08"}, f.GetSheetList())
	rows, err := f.GetRows("ПМ_01.08")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Score"}, rows[0])
	assert.Equal(t, []string{"ПМ", "260"}, rows[1])
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "Passing scores")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}
