package ui

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReactionTest/control"
	"ReactionTest/i18n"
	"ReactionTest/reaction"
)

type fakeApp struct {
	mu    sync.Mutex
	snap  reaction.Snapshot
	cmds  []control.CommandType
	runes []rune
}

func (f *fakeApp) EnqueueCommand(cmd control.Command) {
	f.mu.Lock()
	f.cmds = append(f.cmds, cmd.Type)
	s := f.snap
	f.mu.Unlock()
	if cmd.Reply != nil {
		cmd.Reply <- s
	}
}

func (f *fakeApp) Snapshot() reaction.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeApp) Countdown() int                          { return 3 }
func (f *fakeApp) HandleKeyRune(r rune)                     { f.runes = append(f.runes, r) }
func (f *fakeApp) ShowInfoDialog(string, string, fyne.Size) {}

func (f *fakeApp) commands() []control.CommandType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]control.CommandType(nil), f.cmds...)
}

func newTestView(t *testing.T, s reaction.Snapshot) (*View, *fakeApp) {
	t.Helper()
	test.NewTempApp(t)
	i18n.SetLang("en")
	a := &fakeApp{snap: s}
	return NewView(a), a
}

func TestPhaseColor(t *testing.T) {
	assert.Equal(t, colorIdle, PhaseColor(reaction.PhaseIdle))
	assert.Equal(t, colorWaiting, PhaseColor(reaction.PhaseWaiting))
	assert.Equal(t, colorReady, PhaseColor(reaction.PhaseReady))
	assert.Equal(t, colorClicked, PhaseColor(reaction.PhaseClicked))
}

func TestResultText(t *testing.T) {
	i18n.SetLang("en")

	headline, feedback, c := ResultText(reaction.TooEarly)
	assert.Equal(t, "Too early! Try again.", headline)
	assert.Empty(t, feedback)
	assert.Equal(t, colorRed, c)

	headline, feedback, c = ResultText(reaction.Millis(245))
	assert.Equal(t, "245ms", headline)
	assert.Equal(t, "Super Quick", feedback)
	assert.Equal(t, colorGreen, c)

	_, feedback, c = ResultText(reaction.Millis(150))
	assert.Equal(t, "Lightning Fast", feedback)
	assert.Equal(t, colorPurple, c)

	_, feedback, c = ResultText(reaction.Millis(650))
	assert.Equal(t, "Keep Practicing", feedback)
	assert.Equal(t, colorRed, c)
}

func TestHistoryLines(t *testing.T) {
	i18n.SetLang("en")

	lines := AttemptLines([]reaction.Outcome{120, reaction.TooEarly, 300})
	assert.Equal(t, []string{
		"Attempt 1: 120ms",
		"Attempt 2: Too early",
		"Attempt 3: 300ms",
	}, lines)

	assert.Equal(t, "Average Time: 210.00ms", AverageLine(210, true))
	assert.Equal(t, "Average Time: N/Ams", AverageLine(0, false))
}

func TestBestAndCountdownLines(t *testing.T) {
	i18n.SetLang("en")

	assert.Empty(t, BestLine(reaction.Snapshot{}))
	assert.Equal(t, "Best Time: 187ms", BestLine(reaction.Snapshot{Best: 187, HasBest: true}))

	assert.Empty(t, CountdownLine(0))
	assert.Equal(t, "Get ready: 4", CountdownLine(4))
}

func TestViewRendersPhases(t *testing.T) {
	v, _ := newTestView(t, reaction.Snapshot{Phase: reaction.PhaseIdle})
	assert.True(t, v.startButton.Visible())
	assert.False(t, v.waitingBox.Visible())
	assert.False(t, v.bestText.Visible())

	v.render(reaction.Snapshot{Phase: reaction.PhaseWaiting}, 3)
	assert.False(t, v.startButton.Visible())
	assert.True(t, v.waitingBox.Visible())
	assert.Equal(t, "Get ready: 3", v.countdownText.Text)
	assert.Equal(t, colorWaiting, v.background.FillColor)

	v.render(reaction.Snapshot{Phase: reaction.PhaseReady}, 0)
	assert.True(t, v.readyText.Visible())
	assert.False(t, v.waitingBox.Visible())

	v.render(reaction.Snapshot{
		Phase:    reaction.PhaseClicked,
		Result:   287,
		Attempts: []reaction.Outcome{287},
		Best:     287,
		HasBest:  true,
	}, 0)
	assert.True(t, v.resultBox.Visible())
	assert.Equal(t, "287ms", v.resultText.Text)
	assert.Equal(t, "Super Quick", v.feedbackText.Text)
	assert.True(t, v.bestText.Visible())
	assert.Equal(t, "Best Time: 287ms", v.bestText.Text)

	v.render(reaction.Snapshot{Phase: reaction.PhaseClicked, Result: reaction.TooEarly}, 0)
	assert.Equal(t, "Too early! Try again.", v.resultText.Text)
	assert.Empty(t, v.feedbackText.Text)
}

func TestViewToggleHistory(t *testing.T) {
	v, a := newTestView(t, reaction.Snapshot{})
	a.snap = reaction.Snapshot{
		Phase:      reaction.PhaseClicked,
		Result:     120,
		Attempts:   []reaction.Outcome{120, reaction.TooEarly, 300},
		Average:    210,
		HasAverage: true,
	}

	assert.False(t, v.historyBox.Visible())
	test.Tap(v.historyButton)
	require.True(t, v.HistoryVisible())
	assert.True(t, v.historyBox.Visible())
	assert.Equal(t, "Hide Attempts", v.historyButton.Text)
	assert.Len(t, v.historyList.Objects, 3)
	assert.Equal(t, "Average Time: 210.00ms", v.averageText.Text)

	test.Tap(v.historyButton)
	assert.False(t, v.historyBox.Visible())
	assert.Equal(t, "Show Last 5 Attempts", v.historyButton.Text)
}

func TestPanelTapOnlyClicksDuringTrial(t *testing.T) {
	v, a := newTestView(t, reaction.Snapshot{Phase: reaction.PhaseIdle})

	test.Tap(v.panel)
	assert.Empty(t, a.commands())

	a.snap = reaction.Snapshot{Phase: reaction.PhaseWaiting}
	test.Tap(v.panel)
	a.snap = reaction.Snapshot{Phase: reaction.PhaseReady}
	test.Tap(v.panel)
	a.snap = reaction.Snapshot{Phase: reaction.PhaseClicked, Result: 300}
	test.Tap(v.panel)

	assert.Equal(t, []control.CommandType{control.CmdClick, control.CmdClick}, a.commands())
}

func TestButtonsSendCommands(t *testing.T) {
	v, a := newTestView(t, reaction.Snapshot{Phase: reaction.PhaseIdle})

	test.Tap(v.startButton)
	test.Tap(v.tryAgainButton)
	test.Tap(v.resetButton)
	assert.Equal(t, []control.CommandType{control.CmdStart, control.CmdStart, control.CmdReset}, a.commands())
}

func TestSendGivesUpWithoutReply(t *testing.T) {
	v, _ := newTestView(t, reaction.Snapshot{})
	v.app = &silentApp{fakeApp: &fakeApp{}}

	start := time.Now()
	v.send(control.CmdStart)
	assert.GreaterOrEqual(t, time.Since(start), replyTimeout)
}

type silentApp struct {
	*fakeApp
}

func (s *silentApp) EnqueueCommand(control.Command) {}

func TestCreateMainWindow(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	i18n.SetLang("en")
	a := &fakeApp{}

	w, v := CreateMainWindow(a, fyneApp, fyne.NewSize(400, 500))
	require.NotNil(t, v)
	assert.Equal(t, v.GetCanvasObject(), w.Content())
	assert.Equal(t, "Reaction Speed Test", v.titleText.Text)
}
