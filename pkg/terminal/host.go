// Package terminal 在终端里运行关卡模拟器
//
// Host 只通过 Simulator.Obstacles() 快照绘制，不订阅 Listener，
// 与图形版宿主共用同一个模拟器实现。
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/level"
)

// Options 宿主可选项
type Options struct {
	TicksPerSecond int                        // <= 0 时按 60 处理
	Chime          Chime                      // nil 时静音
	Settings       *game.SettingsManager      // nil 时不记录最佳成绩
	Watcher        *config.LevelConfigWatcher // nil 时不热更新
}

// Host 终端宿主
type Host struct {
	screen   Screen
	sim      *level.Simulator
	renderer *Renderer
	chime    Chime
	settings *game.SettingsManager
	watcher  *config.LevelConfigWatcher

	tickInterval time.Duration
	deltaTime    float64
	lastPassed   int
}

// NewHost 创建终端宿主，模拟器应已 Start
func NewHost(screen Screen, sim *level.Simulator, opts Options) *Host {
	tps := opts.TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	chime := opts.Chime
	if chime == nil {
		chime = nopChime{}
	}
	return &Host{
		screen:       screen,
		sim:          sim,
		renderer:     NewRenderer(sim.Geometry()),
		chime:        chime,
		settings:     opts.Settings,
		watcher:      opts.Watcher,
		tickInterval: time.Second / time.Duration(tps),
		deltaTime:    1.0 / float64(tps),
	}
}

// Run 运行主循环，直到按下退出键、事件通道关闭或 ctx 取消
func (h *Host) Run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	h.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Tick()
		}
	}
}

// HandleEvent 处理终端事件，返回 false 表示退出
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		h.Draw()
	}
	return true
}

// HandleKey 处理按键，返回 false 表示退出
//
//	q / Esc / Ctrl-C  退出
//	p / 空格          暂停或继续
//	r                 重新开局
func (h *Host) HandleKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ch {
		case 'q':
			return false
		case 'p', ' ':
			if h.sim.IsPaused() {
				h.sim.Resume()
			} else {
				h.sim.Pause()
			}
		case 'r':
			h.Restart()
		}
	}
	h.Draw()
	return true
}

// Tick 推进一个固定时间步并重绘
func (h *Host) Tick() {
	h.drainWatcher()
	h.sim.Update(h.deltaTime)

	if passed := h.sim.PassedCount(); passed > h.lastPassed {
		h.lastPassed = passed
		if h.settings == nil || h.settings.GetSettings().SoundEnabled {
			h.chime.Play()
		}
	}
	h.Draw()
}

// Restart 记录成绩并重新开局
func (h *Host) Restart() {
	h.RecordBest()
	h.sim.Start()
	h.lastPassed = 0
}

// RecordBest 把当前通过数写入设置
func (h *Host) RecordBest() {
	if h.settings != nil && h.settings.RecordPassed(h.sim.PassedCount()) {
		log.Printf("[Terminal] New best: %d", h.sim.PassedCount())
	}
}

// Draw 重绘当前帧
func (h *Host) Draw() {
	h.renderer.Draw(h.screen, h.sim.Obstacles(), h.HUD())
}

// HUD 返回顶部状态栏文字
func (h *Host) HUD() string {
	hud := fmt.Sprintf(" passed %d | spawned %d | %s | gap %.0f",
		h.sim.PassedCount(), h.sim.SpawnCount(), h.sim.TierName(), h.sim.GapSize())
	if h.settings != nil {
		hud += fmt.Sprintf(" | best %d", max(h.settings.GetSettings().BestPassed, h.sim.PassedCount()))
	}
	if h.sim.IsPaused() {
		hud += " | PAUSED"
	}
	return hud
}

func (h *Host) drainWatcher() {
	if h.watcher == nil {
		return
	}
	open := h.watcher.Drain(func(cfg *config.LevelConfig) {
		if err := h.sim.ApplyDifficultyTable(cfg.DifficultyTable()); err != nil {
			log.Printf("[Terminal] Rejected difficulty table: %v", err)
		}
	}, func(err error) {
		log.Printf("[Terminal] Level config error: %v", err)
	})
	if !open {
		h.watcher = nil
	}
}
