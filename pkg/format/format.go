// Package format holds the display helpers shared by the dashboard payloads:
// percent clamping, score bands, Thai baht amounts and Buddhist-era dates.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ClampPercent limits v to [0, 100]. NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

func ScoreBand(score float64) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 75:
		return BandGood
	case score >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

var thai = message.NewPrinter(language.Thai)

// FormatTHB renders amount as ฿1,234.57 (two decimals, th-TH grouping).
// Amounts that round to zero carry no sign.
func FormatTHB(amount float64) string {
	cents := math.Round(math.Abs(amount) * 100)
	sign := ""
	if amount < 0 && cents > 0 {
		sign = "-"
	}
	return sign + "฿" + thai.Sprintf("%.2f", cents/100)
}

// Decimal renders v in its shortest form but always with a fractional part:
// 2 -> "2.0", 1.8 -> "1.8". Lab values and thresholds in clinical text use it.
func Decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

var thaiMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// FormatThaiDate renders t as "15 มี.ค. 2567" using the Buddhist era year.
func FormatThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+543)
}
