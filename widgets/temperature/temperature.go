// Package temperature is the 7GUIs temperature converter.
//
// The State stores Fahrenheit only, Celsius is derived. Inputs that do not parse to a number
// leave the State unchanged, so the other field keeps its last value.
package temperature

import (
	"math"
	"strconv"
	"strings"
)

// InitialFahrenheit is the starting value, 0 degrees Celsius.
const InitialFahrenheit = 32.0

// State of the converter.
type State struct {
	fahrenheit float64
}

// NewState returns the State at InitialFahrenheit.
func NewState() State {
	return State{fahrenheit: InitialFahrenheit}
}

// Fahrenheit returns the stored temperature.
func (s State) Fahrenheit() float64 {
	return s.fahrenheit
}

// Celsius returns the stored temperature converted with C = (F - 32) * 5/9.
func (s State) Celsius() float64 {
	return (s.fahrenheit - 32) * (5.0 / 9.0)
}

// SetCelsius sets the temperature from a Celsius value. NaN and infinities are ignored.
func (s State) SetCelsius(celsius float64) State {
	if !isFinite(celsius) {
		return s
	}

	s.fahrenheit = celsius*(9.0/5.0) + 32

	return s
}

// SetFahrenheit sets the temperature from a Fahrenheit value. NaN and infinities are ignored.
func (s State) SetFahrenheit(fahrenheit float64) State {
	if !isFinite(fahrenheit) {
		return s
	}

	s.fahrenheit = fahrenheit

	return s
}

// ParseAndSetCelsius is SetCelsius for text input, unparsable input is ignored.
func (s State) ParseAndSetCelsius(input string) State {
	value, ok := parse(input)
	if !ok {
		return s
	}

	return s.SetCelsius(value)
}

// ParseAndSetFahrenheit is SetFahrenheit for text input, unparsable input is ignored.
func (s State) ParseAndSetFahrenheit(input string) State {
	value, ok := parse(input)
	if !ok {
		return s
	}

	return s.SetFahrenheit(value)
}

// Format renders a temperature the way the input fields show it.
func Format(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func parse(input string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
