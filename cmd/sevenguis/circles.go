package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/script"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/shell"
	"github.com/AntonStoeckl/sevenguis-eventsourced/config"
)

var ErrReadingScriptFailed = errors.New("reading the script failed")

const logMsgMemoryJournal = "the memory journal does not outlive this process, configure postgres to keep sessions"

func (a *app) circlesCommand() *cobra.Command {
	circles := &cobra.Command{
		Use:   "circles",
		Short: "Circle drawer with undo and redo",
	}

	var printSteps bool

	play := &cobra.Command{
		Use:   "play <script.yaml>",
		Short: "Dispatch a script of gestures and print the resulting canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.playCircles(cmd.Context(), args[0], printSteps)
		},
	}
	play.Flags().BoolVar(&printSteps, "steps", false, "print the outcome of every dispatched event")

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Restore a session from the journal and print its canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showCircles(cmd.Context(), shell.SessionID(args[0]))
		},
	}

	circles.AddCommand(play, show)

	return circles
}

func (a *app) playCircles(ctx context.Context, path string, printSteps bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingScriptFailed, err)
	}

	s, err := script.Parse(data)
	if err != nil {
		return err
	}

	store, release, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer release()

	sessionID := shell.SessionID(s.SessionID)
	if sessionID == "" {
		sessionID = shell.NewSessionID()
	}

	session, err := shell.RestoreSession(ctx, store, sessionID, a.sessionOptions()...)
	if err != nil {
		return err
	}

	results, playErr := script.Play(ctx, session, s)

	if printSteps {
		if err = script.RenderResults(a.out, results); err != nil {
			return err
		}
	}

	if playErr != nil {
		return playErr
	}

	if _, err = fmt.Fprintf(a.out, "session: %s\n", session.ID()); err != nil {
		return err
	}

	return script.Render(a.out, session.State())
}

func (a *app) showCircles(ctx context.Context, sessionID shell.SessionID) error {
	if a.cfg.Journal.Engine == config.EngineMemory {
		a.logger.Warn(logMsgMemoryJournal)
	}

	store, release, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer release()

	session, err := shell.RestoreSession(ctx, store, sessionID, a.sessionOptions()...)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(a.out, "session: %s\n", session.ID()); err != nil {
		return err
	}

	return script.Render(a.out, session.State())
}

func (a *app) sessionOptions() []shell.Option {
	return []shell.Option{
		shell.WithPolicies(editor.WithDuplicatePositionEpsilon(a.cfg.CircleDrawer.DuplicatePositionEpsilon)),
		shell.WithContextualLogger(a.logger),
		shell.WithMetrics(a.metrics),
		shell.WithTracing(a.tracing),
	}
}
