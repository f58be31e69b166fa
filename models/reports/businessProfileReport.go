package reports

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/miharina-tech/miharina_backend/config"
	"github.com/xuri/excelize/v2"
)

type BusinessProfileReportRow struct {
	Name               string `json:"name"`
	OwnerEmail         string `json:"owner_email"`
	BusinessType       string `json:"business_type"`
	Region             string `json:"region"`
	Sectors            string `json:"sectors"`
	VerificationStatus string `json:"verification_status"`
	IsActive           bool   `json:"is_active"`
	MatchCount         int64  `json:"match_count"`
	CreatedAt          string `json:"created_at"`
}

func getBusinessProfileReport(ctx context.Context) ([]*BusinessProfileReportRow, error) {

	sql := `
SELECT
    bp.name,
    users.email AS owner_email,
    bp.business_type,
    bp.region,
    array_to_string(bp.sectors, ', ') AS sectors,
    bp.verification_status,
    bp.is_active,
    COALESCE(m.match_count, 0) AS match_count,
    to_char(bp.created_at, 'YYYY-MM-DD') AS created_at
FROM
    business_profiles bp
    LEFT JOIN users ON users.id = bp.user_id
    LEFT JOIN (
        SELECT source_business_id, COUNT(*) AS match_count
        FROM matches
        GROUP BY source_business_id
    ) AS m ON m.source_business_id = bp.id
ORDER BY bp.created_at DESC;
`

	var records []*BusinessProfileReportRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// ExportBusinessProfilesExcel writes the admin profile report as an xlsx
// workbook to w.
func ExportBusinessProfilesExcel(ctx context.Context, w io.Writer) error {

	data, err := getBusinessProfileReport(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	// Add headers
	headings := []string{"Name", "OwnerEmail", "BusinessType", "Region", "Sectors", "VerificationStatus", "Active", "Matches", "CreatedAt"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, d := range data {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, d.Name)
		f.SetCellValue(sheetName, "B"+row, d.OwnerEmail)
		f.SetCellValue(sheetName, "C"+row, d.BusinessType)
		f.SetCellValue(sheetName, "D"+row, d.Region)
		f.SetCellValue(sheetName, "E"+row, strings.TrimSpace(d.Sectors))
		f.SetCellValue(sheetName, "F"+row, d.VerificationStatus)
		f.SetCellValue(sheetName, "G"+row, d.IsActive)
		f.SetCellValue(sheetName, "H"+row, d.MatchCount)
		f.SetCellValue(sheetName, "I"+row, d.CreatedAt)
	}

	return f.Write(w)
}
