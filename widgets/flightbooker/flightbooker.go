// Package flightbooker is the 7GUIs flight booker: one-way or return flights between two dates.
package flightbooker

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of dates in input fields and confirmation messages.
const DateLayout = "2006-01-02"

var (
	// ErrReturnBeforeDeparture is returned when booking a return flight that returns before it departs.
	ErrReturnBeforeDeparture = errors.New("return date is before departure date")

	// ErrInvalidDate is returned for dates that do not match DateLayout.
	ErrInvalidDate = errors.New("invalid date")
)

// Kind is the type of flight.
type Kind string

const (
	OneWay Kind = "one-way"
	Return Kind = "return"
)

// State of the booker. Dates are always UTC midnight.
type State struct {
	Kind      Kind
	Departure time.Time
	Return    time.Time
}

// NewState returns a one-way State with both dates set to the day of now.
func NewState(now time.Time) State {
	today := Day(now)

	return State{Kind: OneWay, Departure: today, Return: today}
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a date in DateLayout as UTC midnight.
func ParseDate(input string) (time.Time, error) {
	date, err := time.Parse(DateLayout, input)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}

	return date, nil
}

// SetKind switches between OneWay and Return. Unknown kinds are ignored.
func (s State) SetKind(kind Kind) State {
	if kind == OneWay || kind == Return {
		s.Kind = kind
	}

	return s
}

func (s State) SetDeparture(date time.Time) State {
	s.Departure = Day(date)
	return s
}

// SetReturn sets the return date. It is kept for one-way flights too, the field is only disabled.
func (s State) SetReturn(date time.Time) State {
	s.Return = Day(date)
	return s
}

// ReturnEnabled reports whether the return date field is editable.
func (s State) ReturnEnabled() bool {
	return s.Kind == Return
}

// CanBook reports whether the book button is enabled.
func (s State) CanBook() bool {
	return s.Kind != Return || !s.Return.Before(s.Departure)
}

// Book returns the confirmation message.
func (s State) Book() (string, error) {
	if !s.CanBook() {
		return "", ErrReturnBeforeDeparture
	}

	if s.Kind == Return {
		return fmt.Sprintf(
			"You have booked a flight departing on %s and returning on %s.",
			s.Departure.Format(DateLayout),
			s.Return.Format(DateLayout),
		), nil
	}

	return fmt.Sprintf("You have booked a one-way flight departing on %s.", s.Departure.Format(DateLayout)), nil
}
