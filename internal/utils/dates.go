package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"homestay-backend/internal/domain"
)

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}
	if year < 1 {
		return Date{}, fmt.Errorf("year must be 1 or later")
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String formats the date as yyyy-mm-dd
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the date
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDateRange parses both ends of a stay, rejects end < start and
// returns the range in canonical zero-padded form.
func NormalizeDateRange(r domain.DateRange) (domain.DateRange, error) {
	start, err := ParseDate(r.Start)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid start date: %v", err)
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid end date: %v", err)
	}
	if end.Before(start) {
		return domain.DateRange{}, fmt.Errorf("end date must be >= start date")
	}
	return domain.DateRange{Start: start.String(), End: end.String()}, nil
}

// StayLength returns the number of nights between start and end
func StayLength(r domain.DateRange) (int, error) {
	norm, err := NormalizeDateRange(r)
	if err != nil {
		return 0, err
	}
	start, _ := ParseDate(norm.Start)
	end, _ := ParseDate(norm.End)
	return int(end.Time().Sub(start.Time()).Hours() / 24), nil
}
