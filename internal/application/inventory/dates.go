package inventory

import (
	"strings"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
)

const dateOnly = "2006-01-02"

// ParseDate acepta "2006-01-02" o RFC3339. dateOnly indica si vino sin hora.
func ParseDate(s string) (t time.Time, isDateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, domain.ErrInvalidInput
}

// DateRange convierte start/end de query string en una ventana [from, to).
// Un end sin hora incluye el día completo.
func DateRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		t, _, err := ParseDate(start)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if end != "" {
		t, only, err := ParseDate(end)
		if err != nil {
			return nil, nil, err
		}
		if only {
			t = t.AddDate(0, 0, 1)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.ErrInvalidInput
	}
	return from, to, nil
}
