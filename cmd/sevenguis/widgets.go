package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/sevenguis-eventsourced/widgets/counter"
	"github.com/AntonStoeckl/sevenguis-eventsourced/widgets/flightbooker"
	"github.com/AntonStoeckl/sevenguis-eventsourced/widgets/temperature"
	"github.com/AntonStoeckl/sevenguis-eventsourced/widgets/timer"
)

const progressBarWidth = 30

func (a *app) countCommand() *cobra.Command {
	var clicks int

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Click the counter button a number of times",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			state := counter.State{}
			for range clicks {
				state = counter.Apply(state, counter.Increment{})
			}

			_, err := fmt.Fprintln(a.out, state.Count)

			return err
		},
	}
	cmd.Flags().IntVar(&clicks, "clicks", 1, "number of clicks")

	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	var celsius, fahrenheit string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between Celsius and Fahrenheit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := temperature.NewState()

			if cmd.Flags().Changed("celsius") {
				state = state.ParseAndSetCelsius(celsius)
			} else {
				state = state.ParseAndSetFahrenheit(fahrenheit)
			}

			_, err := fmt.Fprintf(
				a.out,
				"%s Celsius = %s Fahrenheit\n",
				temperature.Format(state.Celsius()),
				temperature.Format(state.Fahrenheit()),
			)

			return err
		},
	}
	cmd.Flags().StringVar(&celsius, "celsius", "", "temperature in Celsius")
	cmd.Flags().StringVar(&fahrenheit, "fahrenheit", "", "temperature in Fahrenheit")
	cmd.MarkFlagsOneRequired("celsius", "fahrenheit")
	cmd.MarkFlagsMutuallyExclusive("celsius", "fahrenheit")

	return cmd
}

func (a *app) bookCommand() *cobra.Command {
	var kind, departure, returnDate string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a one-way or return flight",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			state := flightbooker.NewState(a.now()).SetKind(flightbooker.Kind(kind))

			if departure != "" {
				date, err := flightbooker.ParseDate(departure)
				if err != nil {
					return err
				}

				state = state.SetDeparture(date)
			}

			if returnDate != "" {
				date, err := flightbooker.ParseDate(returnDate)
				if err != nil {
					return err
				}

				state = state.SetReturn(date)
			}

			message, err := state.Book()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(a.out, message)

			return err
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(flightbooker.OneWay), "one-way or return")
	cmd.Flags().StringVar(&departure, "departure", "", "departure date as "+flightbooker.DateLayout+", defaults to today")
	cmd.Flags().StringVar(&returnDate, "return", "", "return date as "+flightbooker.DateLayout+", defaults to today")

	return cmd
}

func (a *app) timerCommand() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Fill a progress bar over a duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTimer(cmd.Context(), duration)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "timer duration, at most "+timer.MaxDuration.String())

	return cmd
}

func (a *app) runTimer(ctx context.Context, duration time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := timer.SystemClock{}
	state := timer.Apply(timer.NewState(clock.Now()), timer.UpdateDuration{Duration: duration, Now: clock.Now()})

	var writeErr error

	dispatch := func(event timer.Event) {
		state = timer.Apply(state, event)

		if _, err := fmt.Fprintf(a.out, "\r%s", renderProgress(state)); err != nil {
			writeErr = err
			cancel()
		}

		if !state.Active {
			cancel()
		}
	}

	if state.Active {
		err := timer.Run(ctx, clock, a.cfg.Timer.TickInterval, dispatch)
		if writeErr != nil {
			return writeErr
		}

		if !errors.Is(err, context.Canceled) || state.Active {
			return err
		}
	}

	_, err := fmt.Fprintf(a.out, "\r%s\n", renderProgress(state))

	return err
}

// renderProgress draws the gauge and the elapsed time.
func renderProgress(state timer.State) string {
	filled := int(state.Progress() * progressBarWidth)

	return fmt.Sprintf(
		"[%s%s] %.1fs / %.1fs",
		strings.Repeat("#", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		state.Elapsed.Seconds(),
		state.Duration.Seconds(),
	)
}
