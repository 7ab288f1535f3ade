package expense

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

var ErrNoDataRows = errors.New("spreadsheet has no data rows")

// typedCell keeps numeric-looking cells as numbers so serial dates and plain
// amounts survive the decode; everything else stays text.
func typedCell(s string) interface{} {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}

func allEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rawRecordsFromRows(rows [][]string) ([]RawRecord, error) {
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}
	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	var records []RawRecord
	for _, row := range rows[1:] {
		if allEmptyRow(row) {
			continue
		}
		rec := RawRecord{
			Headers: headers,
			Cells:   make(map[string]interface{}, len(headers)),
		}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec.Cells[h] = typedCell(row[i])
			} else {
				rec.Cells[h] = ""
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoDataRows
	}
	return records, nil
}

// DecodeSpreadsheet parses uploaded bytes as xlsx, legacy xls, or csv, in
// that order, reading only the first sheet. The first row is the header.
func DecodeSpreadsheet(fileBytes []byte) ([]RawRecord, string, error) {
	// Try modern Excel first
	xl, xlErr := excelize.OpenReader(bytes.NewReader(fileBytes))
	if xlErr == nil {
		defer xl.Close()
		sheetName := xl.GetSheetName(0)
		rows, err := xl.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, "", fmt.Errorf("read xlsx rows: %w", err)
		}
		records, err := rawRecordsFromRows(rows)
		if err != nil {
			return nil, "", err
		}
		return records, ".xlsx", nil
	}

	// Legacy XLS needs a temp file since the reader works with paths
	tmp, tmpErr := os.CreateTemp("", "expense-*.xls")
	if tmpErr == nil {
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(fileBytes); err == nil {
			tmp.Close()
			if book, err := xls.OpenFile(tmp.Name()); err == nil {
				if sheet, err := book.GetSheet(0); err == nil && sheet != nil {
					var rows [][]string
					for _, xlsRow := range sheet.GetRows() {
						var vals []string
						for _, col := range xlsRow.GetCols() {
							vals = append(vals, col.GetString())
						}
						rows = append(rows, vals)
					}
					records, err := rawRecordsFromRows(rows)
					if err != nil {
						return nil, "", err
					}
					return records, ".xls", nil
				}
			}
		} else {
			tmp.Close()
		}
	}

	// Fall back to CSV
	r := csv.NewReader(bytes.NewReader(fileBytes))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("parse as xlsx, xls, or csv: %w", xlErr)
	}
	records, err := rawRecordsFromRows(rows)
	if err != nil {
		return nil, "", err
	}
	return records, ".csv", nil
}

// ---------------- S3 archival of original upload bytes ----------------

const (
	expenseS3DefaultBucket = "varejoops"
	expenseS3DefaultRegion = "sa-east-1"
	expenseS3Prefix        = "despesas/"
)

func expenseS3Bucket() string {
	if b := strings.TrimSpace(os.Getenv("EXPENSE_S3_BUCKET")); b != "" {
		return b
	}
	return expenseS3DefaultBucket
}

func expenseS3Region() string {
	if r := strings.TrimSpace(os.Getenv("EXPENSE_S3_REGION")); r != "" {
		return r
	}
	return expenseS3DefaultRegion
}

// isS3Enabled reads EXPENSE_S3_ENABLED; archival is off unless explicitly on.
func isS3Enabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("EXPENSE_S3_ENABLED")))
	return v == "1" || v == "true" || v == "yes"
}

func fileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func detectContentType(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}
	if len(data) > 512 {
		return http.DetectContentType(data[:512])
	}
	return http.DetectContentType(data)
}

// ArchiveUpload stores the original file bytes under a content-hash key so
// the source of any batch can be audited later.
func ArchiveUpload(ctx context.Context, batchID string, fileBytes []byte, fileExt string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(expenseS3Region()))
	if err != nil {
		return "", fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	key := fmt.Sprintf("%s%s/%s%s", expenseS3Prefix, batchID, fileHash(fileBytes), fileExt)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(expenseS3Bucket()),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(detectContentType(fileBytes)),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3 (bucket %s, key %s): %w", expenseS3Bucket(), key, err)
	}
	return key, nil
}
