package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"healthmon/internal/domain"
)

// VillageHeader is the column layout of a village import sheet.
var VillageHeader = []string{
	"Name", "District", "Latitude", "Longitude", "Population",
	"Risk Level", "Water Sources", "Recent Cases", "ASHA Worker",
}

// ReadVillages parses the first sheet of an xlsx village list. The first
// row must be the header. Blank rows are skipped.
func ReadVillages(r io.Reader) ([]domain.Village, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("export.ReadVillages: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("export.ReadVillages: rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("export.ReadVillages: empty sheet")
	}
	for i, h := range VillageHeader {
		if i >= len(rows[0]) || !strings.EqualFold(strings.TrimSpace(rows[0][i]), h) {
			return nil, fmt.Errorf("export.ReadVillages: column %d must be %q", i+1, h)
		}
	}

	var out []domain.Village
	for n, row := range rows[1:] {
		line := n + 2
		cell := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		if cell(0) == "" {
			continue
		}
		v := domain.Village{
			Name:       cell(0),
			District:   cell(1),
			RiskLevel:  domain.RiskLevel(strings.ToLower(cell(5))),
			AshaWorker: cell(8),
		}
		var perr error
		parseFloat := func(i int, dst *float64) {
			if perr != nil {
				return
			}
			if *dst, perr = strconv.ParseFloat(cell(i), 64); perr != nil {
				perr = fmt.Errorf("row %d %s: %w", line, VillageHeader[i], perr)
			}
		}
		parseInt := func(i int, dst *int) {
			if perr != nil {
				return
			}
			if *dst, perr = strconv.Atoi(cell(i)); perr != nil {
				perr = fmt.Errorf("row %d %s: %w", line, VillageHeader[i], perr)
			}
		}
		parseFloat(2, &v.Latitude)
		parseFloat(3, &v.Longitude)
		parseInt(4, &v.Population)
		parseInt(6, &v.WaterSources)
		parseInt(7, &v.RecentCases)
		if perr != nil {
			return nil, fmt.Errorf("export.ReadVillages: %w", perr)
		}
		if !v.RiskLevel.Valid() {
			return nil, fmt.Errorf("export.ReadVillages: row %d: unknown risk level %q", line, cell(5))
		}
		out = append(out, v)
	}
	return out, nil
}
