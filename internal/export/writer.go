package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// FileName "kar_analizi_siparis_bazli_2024-03-05.xlsx" biçiminde dosya adı üretir
func FileName(base string, now time.Time, format string) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), format)
}

// WriteCSV tabloyu başlık satırıyla birlikte yazar. Ondalıklar noktayla ve iki hane.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csv başlığı yazılamadı: %w", err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = formatCell(cell)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv satırı yazılamadı: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX her tabloyu ayrı sayfaya yazar, başlık satırı kalın
func WriteXLSX(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("excel stili oluşturulamadı: %w", err)
	}

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("sayfa adı verilemedi: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sayfa oluşturulamadı: %w", err)
		}

		header := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			header[j] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("başlık yazılamadı: %w", err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("başlık stili uygulanamadı: %w", err)
		}

		for r, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("satır yazılamadı (%s): %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel dosyası yazılamadı: %w", err)
	}
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprint(x)
	}
}
