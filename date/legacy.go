package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// jalaliBefore is the first year read as Gregorian in slashed dates.
const jalaliBefore = 1700

// legacyDigits maps Persian and Arabic-Indic digits to ASCII, and drops the
// direction marks some locales insert.
var legacyDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"\u200e", "", "\u200f", "",
)

// parseSlashed parses "YYYY/M/D" dates, as written by the fa-IR locale in
// older documents. Years before 1700 are Solar Hijri and converted to the
// Gregorian calendar.
func parseSlashed(str string) (Date, error) {
	parts := strings.Split(legacyDigits.Replace(strings.TrimSpace(str)), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q want format YYYY/M/D", str)
	}
	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
		}
		ymd[i] = n
	}
	y, m, d := ymd[0], ymd[1], ymd[2]
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("invalid date %q: day or month out of range", str)
	}
	if y >= jalaliBefore {
		return New(y, time.Month(m), d), nil
	}
	// the last six months of the Solar Hijri year have at most 30 days.
	if m > 6 && d > 30 {
		return Date{}, fmt.Errorf("invalid date %q: day out of range", str)
	}
	t := ptime.Date(y, ptime.Month(m), d, 0, 0, 0, 0, time.UTC).Time()
	return New(t.Date()), nil
}
