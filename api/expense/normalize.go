package expense

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"VarejoOpsSaas/api/constants"
	"VarejoOpsSaas/internal/config"
)

// CellText renders a loosely-typed cell as plain text. Numbers keep the
// shortest representation that round-trips so dedup keys stay stable.
func CellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ParseAmount converts a raw cell into a monetary value. Numeric cells pass
// through. Strings are parsed under Brazilian conventions: when both "." and
// "," appear and the last comma follows the last dot, dots are thousands
// separators; a lone comma is the decimal separator. Anything unparseable
// degrades to 0 so one bad cell never aborts an import.
func ParseAmount(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case nil:
		return 0
	}

	s, ok := v.(string)
	if !ok {
		return 0
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// FormatAmount renders an amount the way dedup keys expect it.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDateValue turns a raw cell into date text. Numeric cells are
// spreadsheet serial dates and are rendered dd/mm/yyyy; strings pass
// through unmodified since callers must tolerate free-text dates.
func ParseDateValue(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return serialToDateText(t)
	case int:
		return serialToDateText(float64(t))
	case int64:
		return serialToDateText(float64(t))
	case string:
		return strings.TrimSpace(t)
	default:
		return ""
	}
}

func serialToDateText(serial float64) string {
	days := serial - float64(config.SerialEpochOffsetDays)
	secs := int64(days * 86400)
	return time.Unix(secs, 0).UTC().Format(constants.DateFormatBR)
}

// ParseStatus maps status text containing "aberto" or "pendente" to the open
// state; every other value, including absence, defaults to paid.
func ParseStatus(v interface{}) string {
	s := strings.ToLower(strings.TrimSpace(CellText(v)))
	if strings.Contains(s, "aberto") || strings.Contains(s, "pendente") {
		return constants.StatusAberto
	}
	return constants.StatusPago
}
