package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]interface{}
}

// Workbook renders s as an xlsx file with one sheet per section.
func Workbook(s Snapshot) ([]byte, error) {
	sheets := []sheet{
		{
			name:   "Districts",
			header: []string{"District", "Villages", "ASHA Workers", "Active Alerts", "Risk Level"},
			widths: []float64{20, 12, 15, 15, 12},
		},
		{
			name:   "Stats",
			header: []string{"Metric", "Value"},
			widths: []float64{25, 15},
			rows: [][]interface{}{
				{"Total Villages", s.Stats.TotalVillages},
				{"High Risk Villages", s.Stats.HighRiskVillages},
				{"Average Risk Score", s.Stats.AverageRiskScore},
				{"Active Alerts", s.Stats.ActiveAlerts},
				{"Critical Alerts", s.Stats.CriticalAlerts},
				{"Health Reports", s.Stats.HealthReports},
				{"Priority Reports", s.Stats.PriorityReports},
				{"Water Reports", s.Stats.WaterReports},
				{"Poor Water Tests", s.Stats.PoorWaterTests},
				{"ASHA Workers", s.Stats.FieldWorkers},
				{"Exported At", s.ExportedAt},
			},
		},
		{
			name:   "Critical Alerts",
			header: []string{"Title", "Type", "Severity", "Village", "District", "Created At", "Status"},
			widths: []float64{35, 20, 10, 20, 15, 22, 14},
		},
		{
			name:   "Recent Reports",
			header: []string{"Type", "Subject", "Village", "ASHA Worker", "At", "Flagged"},
			widths: []float64{10, 30, 20, 20, 22, 10},
		},
	}
	for _, d := range s.Districts {
		sheets[0].rows = append(sheets[0].rows, []interface{}{d.Name, d.Villages, d.Workers, d.Alerts, string(d.RiskLevel)})
	}
	for _, a := range s.CriticalAlerts {
		sheets[2].rows = append(sheets[2].rows, []interface{}{
			a.Title, string(a.Type), string(a.Severity), a.Village, a.District,
			a.CreatedAt.UTC().Format("2006-01-02 15:04:05"), string(a.Status),
		})
	}
	for _, r := range s.RecentReports {
		flagged := "No"
		if r.Flagged {
			flagged = "Yes"
		}
		sheets[3].rows = append(sheets[3].rows, []interface{}{
			r.Type, r.Subject, r.Village, r.Reporter, r.At.UTC().Format("2006-01-02 15:04:05"), flagged,
		})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export.Workbook: header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("export.Workbook: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("export.Workbook: sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return nil, fmt.Errorf("export.Workbook: sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.Workbook: write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	for col, h := range sh.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.name, cell, cell, headerStyle); err != nil {
			return err
		}
		if col < len(sh.widths) {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sh.name, name, name, sh.widths[col]); err != nil {
				return err
			}
		}
	}
	for r, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
