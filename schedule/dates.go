package schedule

import (
	"time"

	"github.com/kbukum/supplysched/errors"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.InvalidDate("date", s)
	}
	return t, nil
}

// FormatDate renders t in YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts date by n days. With businessDays set, Saturdays and
// Sundays are skipped so n counts weekday steps only; the sign of n
// selects direction. n == 0 returns the input unchanged under either mode.
func AddDays(date string, n int, businessDays bool) (string, error) {
	if n == 0 {
		return date, nil
	}

	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	if !businessDays {
		return FormatDate(t.AddDate(0, 0, n)), nil
	}

	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for taken := 0; taken < n; {
		t = t.AddDate(0, 0, step)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			taken++
		}
	}
	return FormatDate(t), nil
}
