// Package main contains the application wiring and the AppManager which
// coordinates the trial controller, the stimulus cue and the UI.
//
// Maintenance notes / tips:
//   - Concurrency model: UI events are posted as control.Command values and
//     applied one at a time by `commandLoop`. The stimulus timer fires on its
//     own goroutine and goes straight to the controller, which serializes it
//     against commands with its own mutex. Both paths end in `onChange`, so
//     never block there.
//   - `cmdCh` is buffered. EnqueueCommand gives up after a short timeout
//     rather than freezing the UI; a dropped command is logged.
//   - `tick` only reads snapshots to refresh the countdown once per second. It
//     never drives the stimulus; the controller's timer does.
package main

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"ReactionTest/control"
	"ReactionTest/i18n"
	"ReactionTest/reaction"
	"ReactionTest/ui"
)

const enqueueTimeout = 150 * time.Millisecond

// CuePlayer plays the stimulus sound.
type CuePlayer interface {
	Play()
}

// Display is the part of the UI the manager pushes snapshots to.
type Display interface {
	UpdateDisplay(s reaction.Snapshot, countdown int)
	ToggleHistory()
}

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	controller *reaction.Controller
	player     CuePlayer
	log        *zap.Logger

	viewLock sync.RWMutex
	view     Display

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
}

// NewAppManager creates a new application manager and starts its command loop.
func NewAppManager(controller *reaction.Controller, player CuePlayer, log *zap.Logger) *AppManager {
	a := &AppManager{
		controller: controller,
		player:     player,
		log:        log,
	}

	a.cmdCh = make(chan control.Command, 64)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	controller.SetOnChange(a.onChange)
	go a.commandLoop()

	return a
}

// SetView attaches the display that receives snapshot updates.
func (a *AppManager) SetView(v Display) {
	a.viewLock.Lock()
	defer a.viewLock.Unlock()
	a.view = v
}

func (a *AppManager) currentView() Display {
	a.viewLock.RLock()
	defer a.viewLock.RUnlock()
	return a.view
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(enqueueTimeout):
		a.log.Warn("EnqueueCommand timeout: dropping command", zap.Stringer("command", cmd.Type))
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			var snap reaction.Snapshot
			switch cmd.Type {
			case control.CmdStart:
				snap = a.controller.Start()
				a.log.Debug("Trial armed",
					zap.Uint64("trial", snap.Trial),
					zap.Duration("delay", time.Until(snap.StimulusAt).Round(time.Millisecond)))
			case control.CmdClick:
				if _, applied := a.controller.Click(); !applied {
					a.log.Debug("Click ignored outside an active trial")
				}
				snap = a.controller.Snapshot()
			case control.CmdReset:
				snap = a.controller.Reset()
			default:
				snap = a.controller.Snapshot()
			}

			if cmd.Reply != nil {
				select {
				case cmd.Reply <- snap:
				default:
				}
			}
		}
	}
}

// onChange runs after every applied transition.
func (a *AppManager) onChange(s reaction.Snapshot) {
	switch s.Phase {
	case reaction.PhaseReady:
		if a.player != nil {
			a.player.Play()
		}
	case reaction.PhaseClicked:
		if s.Result.Valid() {
			a.log.Info("Trial finished",
				zap.Uint64("trial", s.Trial),
				zap.Int64("ms", s.Result.Millis()),
				zap.Stringer("tier", reaction.Classify(s.Result.Millis())),
				zap.Int64("best_ms", s.Best.Millis()))
		} else {
			a.log.Info("Trial finished too early", zap.Uint64("trial", s.Trial))
		}
	}

	if v := a.currentView(); v != nil {
		v.UpdateDisplay(s, a.controller.Countdown())
	}
}

// Snapshot returns the current controller snapshot.
func (a *AppManager) Snapshot() reaction.Snapshot {
	return a.controller.Snapshot()
}

// Countdown returns the whole seconds left before the stimulus.
func (a *AppManager) Countdown() int {
	return a.controller.Countdown()
}

func (a *AppManager) tick(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := a.controller.Snapshot()
			if s.Phase != reaction.PhaseWaiting {
				continue
			}
			if v := a.currentView(); v != nil {
				v.UpdateDisplay(s, a.controller.Countdown())
			}
		}
	}
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		switch a.controller.Phase() {
		case reaction.PhaseWaiting, reaction.PhaseReady:
			a.EnqueueCommand(control.Command{Type: control.CmdClick})
		default:
			a.EnqueueCommand(control.Command{Type: control.CmdStart})
		}
	case 'r', 'R':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	case 'h', 'H':
		if v := a.currentView(); v != nil {
			v.ToggleHistory()
		}
	}
}

// ShowInfoDialog shows a dialog with the given title and text.
func (a *AppManager) ShowInfoDialog(title, text string, minSize fyne.Size) {
	if a.mainWindow == nil {
		return
	}
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(label)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("close"), scrollableContent, a.mainWindow)
}

// Shutdown stops the command loop and cancels any pending stimulus.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
	a.SetView(nil)
	a.controller.Reset()
}

var _ ui.App = (*AppManager)(nil)
var _ Display = (*ui.View)(nil)
