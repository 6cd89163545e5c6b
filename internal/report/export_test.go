package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
)

func sampleReport() *Report {
	return &Report{
		TotalDatasets: 3,
		DatasetsByYear: []YearCount{
			{Year: 2022, Count: 1},
			{Year: 2023, Count: 2},
		},
		DatasetsByContributor: []ContributorCount{
			{Name: "Dr. Sari", Count: 2},
			{Name: "Budi", Count: 1},
		},
		StudentInvolvement: StudentInvolvement{Contributors: 1, Datasets: 1},
		DepartmentBreakdown: []DepartmentCount{
			{Department: "Informatics", Count: 2},
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, err := Export(sampleReport(), ExportOptions{Format: "csv"})
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	assert.Contains(t, lines, "Total Datasets,3")
	assert.Contains(t, lines, "Year,Count")
	assert.Contains(t, lines, "2023,2")
	assert.Contains(t, lines, "Dr. Sari,2")
	assert.Contains(t, lines, "Student Contributors,1")
	assert.Contains(t, lines, "Informatics,2")
	assert.NotContains(t, string(data), "===")
	assert.NotContains(t, string(data), "Chart Data")
}

func TestExportExcel(t *testing.T) {
	data, err := Export(sampleReport(), ExportOptions{Format: "excel", IncludeCharts: true})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "=== Datasets by Year ===")
	assert.Contains(t, text, "Year\tCount")
	assert.Contains(t, text, "2023\t2")
	assert.Contains(t, text, "=== Chart Data ===")
}

func TestExportFormatCaseInsensitive(t *testing.T) {
	_, err := Export(sampleReport(), ExportOptions{Format: "CSV"})
	assert.NoError(t, err)
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := Export(sampleReport(), ExportOptions{Format: "pdf"})
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)
}
