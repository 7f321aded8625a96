package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/level"
)

// fakeScreen 记录写入的字符
type fakeScreen struct {
	width, height int
	cells         map[[2]int]rune
	shows         int
}

func newFakeScreen(width, height int) *fakeScreen {
	return &fakeScreen{width: width, height: height, cells: make(map[[2]int]rune)}
}

func (s *fakeScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = primary
}
func (s *fakeScreen) Size() (int, int) { return s.width, s.height }
func (s *fakeScreen) Clear()           { clear(s.cells) }
func (s *fakeScreen) Show()            { s.shows++ }

func (s *fakeScreen) at(x, y int) rune { return s.cells[[2]int{x, y}] }

func (s *fakeScreen) row(y int) string {
	out := make([]rune, s.width)
	for x := range out {
		if r := s.at(x, y); r != 0 {
			out[x] = r
		} else {
			out[x] = ' '
		}
	}
	return string(out)
}

type countingChime struct{ plays int }

func (c *countingChime) Play()  { c.plays++ }
func (c *countingChime) Close() {}

type midRandom struct{}

func (midRandom) Range(lo, hi float64) float64 { return (lo + hi) / 2 }

func newStartedSimulator(t *testing.T) *level.Simulator {
	t.Helper()
	sim, err := level.NewSimulator(level.DefaultSettings(), midRandom{}, nil)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	sim.Start()
	return sim
}

func TestRenderer_Mapping(t *testing.T) {
	r := NewRenderer(level.DefaultGeometry())

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"原点列", r.Column(0, 80, 21), 40},
		{"右侧列", r.Column(10, 80, 21), 44},
		{"顶边行", r.Row(50, 21), 1},
		{"中线行", r.Row(0, 21), 11},
		{"底边行", r.Row(-50, 21), 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tt.got)
			}
		})
	}
}

func TestRenderer_DrawPipes(t *testing.T) {
	r := NewRenderer(level.DefaultGeometry())
	screen := newFakeScreen(80, 21)

	r.Draw(screen, []level.ObstacleState{
		{ID: 1, X: 0, IsTop: false, Height: 40},
		{ID: 2, X: 0, IsTop: true, Height: 30},
	}, "HUD")

	if screen.shows != 1 {
		t.Errorf("Show calls: expected 1, got %d", screen.shows)
	}
	if got := screen.row(0)[:3]; got != "HUD" {
		t.Errorf("HUD row: expected %q, got %q", "HUD", got)
	}

	// 底部管道：第 13 行是头部，14~20 行是主体
	if screen.at(39, 13) != headRune || screen.at(39, 20) != bodyRune {
		t.Errorf("bottom pipe: head %q at row 13, body %q at row 20", screen.at(39, 13), screen.at(39, 20))
	}
	if screen.at(39, 12) != 0 {
		t.Errorf("row above bottom pipe should be empty, got %q", screen.at(39, 12))
	}

	// 顶部管道：第 1~6 行是主体，第 7 行是头部
	if screen.at(39, 1) != bodyRune || screen.at(39, 7) != headRune {
		t.Errorf("top pipe: body %q at row 1, head %q at row 7", screen.at(39, 1), screen.at(39, 7))
	}
	if screen.at(39, 8) != 0 {
		t.Errorf("row below top pipe should be empty, got %q", screen.at(39, 8))
	}

	// 管道外的列为空
	if screen.at(30, 15) != 0 || screen.at(50, 3) != 0 {
		t.Error("cells outside pipes should be empty")
	}
}

func TestRenderer_ClipsOffscreen(t *testing.T) {
	r := NewRenderer(level.DefaultGeometry())
	screen := newFakeScreen(40, 11)

	r.Draw(screen, []level.ObstacleState{{ID: 1, X: 100, Height: 30}, {ID: 2, X: -100, IsTop: true, Height: 30}}, "")

	for pos := range screen.cells {
		if pos[0] < 0 || pos[0] >= 40 || pos[1] < 0 || pos[1] >= 11 {
			t.Errorf("cell %v drawn outside the screen", pos)
		}
	}
}

func TestHost_TickPlaysChime(t *testing.T) {
	sim := newStartedSimulator(t)
	screen := newFakeScreen(80, 24)
	chime := &countingChime{}
	host := NewHost(screen, sim, Options{Chime: chime})

	for i := 0; i < 90; i++ {
		host.Tick()
	}

	if sim.PassedCount() != 2 {
		t.Fatalf("PassedCount after 1.5s: expected 2, got %d", sim.PassedCount())
	}
	if chime.plays != 1 {
		t.Errorf("chime plays: expected 1, got %d", chime.plays)
	}
	if screen.shows != 90 {
		t.Errorf("Show calls: expected 90, got %d", screen.shows)
	}
}

func TestHost_SoundDisabled(t *testing.T) {
	sim := newStartedSimulator(t)
	settings := game.NewSettingsManager(nil)
	settings.SetSoundEnabled(false)
	chime := &countingChime{}
	host := NewHost(newFakeScreen(80, 24), sim, Options{Chime: chime, Settings: settings})

	for i := 0; i < 90; i++ {
		host.Tick()
	}
	if chime.plays != 0 {
		t.Errorf("chime should stay silent when sound is disabled, played %d", chime.plays)
	}
}

func TestHost_HandleKey(t *testing.T) {
	sim := newStartedSimulator(t)
	settings := game.NewSettingsManager(nil)
	host := NewHost(newFakeScreen(80, 24), sim, Options{Settings: settings})

	for i := 0; i < 90; i++ {
		host.Tick()
	}

	if !host.HandleKey(tcell.KeyRune, 'p') || !sim.IsPaused() {
		t.Error("'p' should pause")
	}
	if !host.HandleKey(tcell.KeyRune, ' ') || sim.IsPaused() {
		t.Error("space should resume")
	}

	if !host.HandleKey(tcell.KeyRune, 'r') {
		t.Error("'r' should not quit")
	}
	if sim.PassedCount() != 0 || sim.ObstacleCount() != 4 {
		t.Errorf("restart should reset, got passed=%d obstacles=%d", sim.PassedCount(), sim.ObstacleCount())
	}
	if settings.GetSettings().BestPassed != 2 {
		t.Errorf("BestPassed: expected 2, got %d", settings.GetSettings().BestPassed)
	}

	quitKeys := []struct {
		name string
		key  tcell.Key
		ch   rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"Esc", tcell.KeyEscape, 0},
		{"Ctrl-C", tcell.KeyCtrlC, 0},
	}
	for _, tt := range quitKeys {
		if host.HandleKey(tt.key, tt.ch) {
			t.Errorf("%s should quit", tt.name)
		}
	}
}

func TestHost_Run(t *testing.T) {
	t.Run("ctx取消", func(t *testing.T) {
		sim := newStartedSimulator(t)
		screen := newFakeScreen(80, 24)
		host := NewHost(screen, sim, Options{TicksPerSecond: 200})

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := host.Run(ctx, make(chan tcell.Event))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}
		if screen.shows < 2 {
			t.Errorf("expected several frames, got %d", screen.shows)
		}
	})

	t.Run("事件通道关闭", func(t *testing.T) {
		sim := newStartedSimulator(t)
		host := NewHost(newFakeScreen(80, 24), sim, Options{})

		events := make(chan tcell.Event)
		close(events)
		if err := host.Run(context.Background(), events); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})
}

func TestHost_HUD(t *testing.T) {
	sim := newStartedSimulator(t)
	host := NewHost(newFakeScreen(80, 24), sim, Options{Settings: game.NewSettingsManager(nil)})

	want := " passed 0 | spawned 0 | easy | gap 45 | best 0"
	if got := host.HUD(); got != want {
		t.Errorf("HUD: expected %q, got %q", want, got)
	}
	sim.Pause()
	if got := host.HUD(); got != want+" | PAUSED" {
		t.Errorf("paused HUD: got %q", got)
	}
}
