package clock

import "time"

// System отдает текущее время в UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
