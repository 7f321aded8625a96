package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/flappy/pkg/config"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.Mute = true
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewApp_StartsLevel(t *testing.T) {
	a := newTestApp(t, Config{})

	sim := a.Simulator()
	if sim.ObstacleCount() != 4 {
		t.Errorf("ObstacleCount after NewApp: expected 4, got %d", sim.ObstacleCount())
	}
	if a.entityManager.EntityCount() != 4 {
		t.Errorf("EntityCount after NewApp: expected 4, got %d", a.entityManager.EntityCount())
	}
	if w, h := a.Layout(1920, 1080); w != ScreenWidth || h != ScreenHeight {
		t.Errorf("Layout: expected %dx%d, got %dx%d", ScreenWidth, ScreenHeight, w, h)
	}
}

func TestApp_TickKeepsMirrorInSync(t *testing.T) {
	a := newTestApp(t, Config{})

	for i := 0; i < 60*15; i++ {
		a.Tick()
		if a.entityManager.EntityCount() != a.simulator.ObstacleCount() {
			t.Fatalf("tick %d: entities %d != obstacles %d", i, a.entityManager.EntityCount(), a.simulator.ObstacleCount())
		}
	}

	if a.simulator.PassedCount() == 0 {
		t.Error("expected some obstacles to pass in 15 seconds")
	}
	if a.lastPassed != a.simulator.PassedCount() {
		t.Errorf("lastPassed %d should track PassedCount %d", a.lastPassed, a.simulator.PassedCount())
	}
}

func TestApp_PauseAndRestart(t *testing.T) {
	a := newTestApp(t, Config{})

	for i := 0; i < 120; i++ {
		a.Tick()
	}
	passed := a.simulator.PassedCount()
	if passed == 0 {
		t.Fatal("expected passes after 2 seconds")
	}

	a.TogglePause()
	timer := a.simulator.SpawnTimer()
	for i := 0; i < 30; i++ {
		a.Tick()
	}
	if a.simulator.SpawnTimer() != timer {
		t.Error("paused simulator should not advance")
	}
	if !strings.Contains(strings.Join(a.HUDLines(), "\n"), "PAUSED") {
		t.Error("HUD should show pause state")
	}
	a.TogglePause()

	a.Restart()
	if a.simulator.PassedCount() != 0 || a.simulator.SpawnCount() != 0 {
		t.Errorf("Restart should reset counters, got passed=%d spawned=%d", a.simulator.PassedCount(), a.simulator.SpawnCount())
	}
	if a.entityManager.EntityCount() != 4 {
		t.Errorf("Restart should leave only the initial obstacles, got %d entities", a.entityManager.EntityCount())
	}
	if best := a.SettingsManager().GetSettings().BestPassed; best != passed {
		t.Errorf("BestPassed: expected %d, got %d", passed, best)
	}
}

func TestApp_HUDLines(t *testing.T) {
	a := newTestApp(t, Config{})

	lines := a.HUDLines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 HUD lines without debug, got %v", lines)
	}
	if lines[0] != "Passed: 0  Best: 0" || lines[1] != "Difficulty: easy" {
		t.Errorf("unexpected HUD: %v", lines)
	}

	a.SettingsManager().ToggleDebug()
	if got := len(a.HUDLines()); got != 5 {
		t.Errorf("expected 5 HUD lines with debug, got %d", got)
	}
}

func TestApp_WindowSize(t *testing.T) {
	a := newTestApp(t, Config{})
	a.SettingsManager().SetWindowScale(3)
	if w, h := a.WindowSize(); w != ScreenWidth*3 || h != ScreenHeight*3 {
		t.Errorf("WindowSize: expected %dx%d, got %dx%d", ScreenWidth*3, ScreenHeight*3, w, h)
	}
}

func TestApp_HotReloadDifficulty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(testLevelYAML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	levelCfg, err := config.LoadLevelConfig(path)
	if err != nil {
		t.Fatalf("LoadLevelConfig() failed: %v", err)
	}

	a := newTestApp(t, Config{Level: levelCfg, WatchPath: path})
	if a.simulator.GapSize() != 45 {
		t.Fatalf("initial gap: expected 45, got %v", a.simulator.GapSize())
	}

	updated := strings.Replace(testLevelYAML, "gapSize: 45", "gapSize: 30", 1)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for a.simulator.GapSize() != 30 {
		if time.Now().After(deadline) {
			t.Fatalf("difficulty table not reloaded, gap still %v", a.simulator.GapSize())
		}
		a.Tick()
		time.Sleep(10 * time.Millisecond)
	}
}

const testLevelYAML = `geometry:
  halfExtent: 50
  pipeWidth: 7.8
  pipeHeadHeight: 3.75
  moveSpeed: 20
  destroyX: -100
  spawnX: 100
  originX: 0
  edgeMargin: 10
initialSpawnTimer: 1.35
difficulty:
  - name: easy
    minSpawnCount: 0
    gapSize: 45
    spawnIntervalMax: 1.35
  - name: hard
    minSpawnCount: 1000
    gapSize: 28
    spawnIntervalMax: 1.1
initialPairs:
  - x: 20
    bottomHeight: 40
    topHeight: 30
  - x: 60
    bottomHeight: 30
    topHeight: 25
`
