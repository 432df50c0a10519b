package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"boxplot/domain/boxplot"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxBytes caps uploads when no explicit limit is configured
const DefaultMaxBytes int64 = 5 << 20

// FileType identifies a supported upload format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeText FileType = "txt"
	FileTypeXLSX FileType = "xlsx"
)

// DataReader extracts numeric cells from CSV and Excel uploads, and numbers
// from plain text uploads
type DataReader struct {
	fileName string
	fileType FileType
	maxBytes int64
}

// NewDataReader creates a reader for fileName, choosing the format by extension
func NewDataReader(fileName string) (*DataReader, error) {
	fileType, err := DetectFileType(fileName)
	if err != nil {
		return nil, err
	}
	return &DataReader{fileName: fileName, fileType: fileType, maxBytes: DefaultMaxBytes}, nil
}

// DetectFileType maps a file name to its format
func DetectFileType(fileName string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".tsv":
		return FileTypeCSV, nil
	case ".txt":
		return FileTypeText, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	default:
		return "", errors.UnsupportedFormat(filepath.Base(fileName))
	}
}

// WithMaxBytes sets the largest upload the reader accepts
func (r *DataReader) WithMaxBytes(n int64) *DataReader {
	if n > 0 {
		r.maxBytes = n
	}
	return r
}

// FileType returns the detected format
func (r *DataReader) FileType() FileType {
	return r.fileType
}

// Source returns the analysis source matching the file format
func (r *DataReader) Source() boxplot.Source {
	if r.fileType == FileTypeXLSX {
		return boxplot.SourceXLSX
	}
	return boxplot.SourceCSV
}

// ReadNumbers returns every cell that parses as a finite number, row by row
// and left to right within a row. Header and other text cells are skipped.
// Text files are tokenised like pasted input instead of split into cells.
func (r *DataReader) ReadNumbers(src io.Reader) ([]float64, error) {
	content, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return nil, errors.ParseError("Failed to read upload", err)
	}
	if int64(len(content)) > r.maxBytes {
		return nil, errors.UploadTooLarge(r.maxBytes)
	}

	var numbers []float64
	switch r.fileType {
	case FileTypeText:
		numbers = dataset.ParseText(string(content))
	case FileTypeXLSX:
		rows, err := readExcelRows(content)
		if err != nil {
			return nil, err
		}
		numbers = numbersFromRows(rows)
	default:
		rows, err := readCSVRows(content)
		if err != nil {
			return nil, err
		}
		numbers = numbersFromRows(rows)
	}

	if len(numbers) == 0 {
		return nil, errors.NoNumericData(fmt.Sprintf("No numeric data found in %s file", strings.ToUpper(string(r.fileType))))
	}
	return numbers, nil
}

// readExcelRows reads the raw cell values of every sheet in workbook order
func readExcelRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.ParseError("Failed to open Excel file", err)
	}
	defer f.Close()

	var rows [][]string
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.ParseError(fmt.Sprintf("Failed to read sheet %s", sheet), err)
		}
		rows = append(rows, sheetRows...)
	}
	return rows, nil
}

// readCSVRows reads delimited text, tolerating ragged rows and stray quotes
func readCSVRows(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("Failed to parse CSV file", err)
	}
	return rows, nil
}

// detectDelimiter picks the most frequent candidate delimiter on the first
// non-blank line, defaulting to a comma.
func detectDelimiter(content []byte) rune {
	var line string
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func numbersFromRows(rows [][]string) []float64 {
	numbers := make([]float64, 0)
	for _, row := range rows {
		for _, cell := range row {
			if v, ok := dataset.ParseNumber(cell); ok {
				numbers = append(numbers, v)
			}
		}
	}
	return numbers
}
