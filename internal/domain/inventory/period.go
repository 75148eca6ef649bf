package inventory

import (
	"fmt"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
)

// Period mes calendario (UTC).
type Period struct {
	Year  int
	Month int
}

// NewPeriod valida año y mes.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return Period{}, domain.ErrInvalidPeriod
	}
	return Period{Year: year, Month: month}, nil
}

// PeriodOf devuelve el mes que contiene t.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Start primer instante del mes.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End primer instante del mes siguiente (límite exclusivo).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Prev mes anterior.
func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

// Key identifica el periodo para locks.
func (p Period) Key() int64 {
	return int64(p.Year)*100 + int64(p.Month)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
