package app

import "time"

// Clock formats the time shown on the main layer.
type Clock struct {
	Format     string // Go time layout, e.g. "03:04PM"
	DateFormat string
	ShowDate   bool
	Now        func() time.Time
}

// Text returns the current time, followed by the date on a second line when
// ShowDate is set.
func (c *Clock) Text() string {
	return c.format(c.now())
}

func (c *Clock) format(t time.Time) string {
	s := t.Format(c.Format)
	if c.ShowDate && c.DateFormat != "" {
		s += "\n" + t.Format(c.DateFormat)
	}
	return s
}

func (c *Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
