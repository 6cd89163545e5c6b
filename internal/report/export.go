package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
)

type ExportOptions struct {
	Format        string `json:"format"`
	IncludeCharts bool   `json:"include_charts"`
}

// Export renders a report as a line-oriented text document:
// comma-separated for "csv", tab-separated with section banners for
// "excel". Any other format is rejected.
func Export(r *Report, opts ExportOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "csv":
		return render(r, ",", false, opts.IncludeCharts), nil
	case "excel":
		return render(r, "\t", true, opts.IncludeCharts), nil
	}
	return nil, fmt.Errorf("%w: export format %q", apperrors.ErrUnsupported, opts.Format)
}

func render(r *Report, sep string, banners bool, charts bool) []byte {
	var b strings.Builder

	section := func(title string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if banners {
			b.WriteString("=== " + title + " ===\n")
		} else {
			b.WriteString(title + "\n")
		}
	}
	row := func(cells ...string) {
		b.WriteString(strings.Join(cells, sep) + "\n")
	}

	section("Report Summary")
	row("Total Datasets", strconv.FormatInt(r.TotalDatasets, 10))

	section("Datasets by Year")
	row("Year", "Count")
	for _, yc := range r.DatasetsByYear {
		row(strconv.Itoa(yc.Year), strconv.FormatInt(yc.Count, 10))
	}

	section("Datasets by Contributor")
	row("Contributor", "Count")
	for _, cc := range r.DatasetsByContributor {
		row(cc.Name, strconv.FormatInt(cc.Count, 10))
	}

	section("Student Involvement")
	row("Student Contributors", strconv.FormatInt(r.StudentInvolvement.Contributors, 10))
	row("Student Datasets", strconv.FormatInt(r.StudentInvolvement.Datasets, 10))

	section("Department Breakdown")
	row("Department", "Count")
	for _, dc := range r.DepartmentBreakdown {
		row(dc.Department, strconv.FormatInt(dc.Count, 10))
	}

	if charts {
		section("Chart Data")
		row("Year", "Count")
		for _, yc := range r.DatasetsByYear {
			row(strconv.Itoa(yc.Year), strconv.FormatInt(yc.Count, 10))
		}
	}

	return []byte(b.String())
}
