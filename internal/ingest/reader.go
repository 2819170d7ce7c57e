package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Row başlık satırındaki kolon adlarıyla anahtarlanmış tek satır
type Row = map[string]string

var (
	ErrEmptyFile         = errors.New("dosya boş")
	ErrNoSheet           = errors.New("excel dosyasında sayfa bulunamadı")
	ErrUnsupportedFormat = errors.New("sadece .xlsx ve .csv dosyaları yüklenebilir")
)

// Read dosya uzantısına göre XLSX veya CSV okur
func Read(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	}
	return nil, ErrUnsupportedFormat
}

// ReadXLSX ilk sayfayı okur. İlk satır başlıktır, tamamen boş satırlar atlanır.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel dosyası okunamadı: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sayfa okunamadı: %w", err)
	}
	return toRows(rows)
}

// ReadCSV virgül veya noktalı virgülle ayrılmış dosyayı okur (ayraç başlık satırından anlaşılır)
func ReadCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("csv okunamadı: %w", err)
	}

	firstLine := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		firstLine = head[:i]
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		cr.Comma = ';'
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv okunamadı: %w", err)
	}
	return toRows(records)
}

func toRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = normalizeHeader(h)
	}

	res := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		empty := true
		for i, col := range header {
			if col == "" {
				continue
			}
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(norm.NFC.String(rec[i]))
			}
			if v != "" {
				empty = false
			}
			row[col] = v
		}
		if empty {
			continue
		}
		res = append(res, row)
	}
	return res, nil
}

// normalizeHeader BOM ve boşlukları temizler, Türkçe karakterleri NFC biçimine getirir.
// Bazı dışa aktarımlar "ı", "ş" gibi harfleri ayrışık (NFD) yazar ve eşleme kaçar.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(norm.NFC.String(h))
}
