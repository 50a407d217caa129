package task

import "time"

const dateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. Tasks carry dates, not
// instants; comparing two Dates is plain string equality.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// Next returns the following calendar day. Invalid dates are returned
// unchanged.
func (d Date) Next() Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, 1))
}

// Split breaks the date into its calendar components. ok is false for
// anything that does not parse.
func (d Date) Split() (year int, month time.Month, day int, ok bool) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return 0, 0, 0, false
	}
	year, month, day = t.Date()
	return year, month, day, true
}
