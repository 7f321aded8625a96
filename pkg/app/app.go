// Package app 提供图形版宿主的核心包装器
//
// 该包把模拟器、ECS 镜像、渲染和设置组装为一个 ebiten.Game，
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/level"
	"github.com/gonewx/flappy/pkg/systems"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 480
	ScreenHeight = 360
)

const audioSampleRate = 48000

var backgroundColor = color.RGBA{R: 112, G: 197, B: 206, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示按时间生成
	Seed uint64
	// Level 关卡配置，为 nil 时使用内嵌默认配置
	Level *config.LevelConfig
	// WatchPath 非空时监听该文件并热更新难度表
	WatchPath string
	// TicksPerSecond 模拟频率，<= 0 时按 60 处理
	TicksPerSecond int
	// AppName gdata 存储使用的应用名，为空时不持久化设置
	AppName string
	// Mute 不创建音频上下文
	Mute bool
}

// App 实现 ebiten.Game 接口
type App struct {
	simulator     *level.Simulator
	entityManager *ecs.EntityManager
	mirror        *systems.ObstacleMirrorSystem
	pipeRender    *systems.PipeRenderSystem

	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	watcher         *config.LevelConfigWatcher

	deltaTime  float64
	lastPassed int
	verbose    bool

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化应用，返回时模拟器已经开局
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	levelCfg := cfg.Level
	if levelCfg == nil {
		var err error
		levelCfg, err = config.DefaultLevelConfig()
		if err != nil {
			return nil, err
		}
	}
	settings := levelCfg.Settings()

	em := ecs.NewEntityManager()
	mirror := systems.NewObstacleMirrorSystem(em, settings.Geometry)

	sim, err := level.NewSimulator(settings, level.NewRandomSource(cfg.Seed), mirror)
	if err != nil {
		return nil, fmt.Errorf("关卡设置无效: %w", err)
	}
	sim.SetVerbose(cfg.Verbose)

	var storage *gdata.Manager
	if cfg.AppName != "" {
		storage = game.OpenStorage(cfg.AppName)
	}
	settingsManager := game.NewSettingsManager(storage)

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(audioSampleRate)
	}

	tps := cfg.TicksPerSecond
	if tps <= 0 {
		tps = 60
	}

	a := &App{
		simulator:       sim,
		entityManager:   em,
		mirror:          mirror,
		pipeRender:      systems.NewPipeRenderSystem(em, settings.Geometry, ScreenWidth, ScreenHeight),
		settingsManager: settingsManager,
		audioManager:    game.NewAudioManager(audioContext, settingsManager),
		deltaTime:       1.0 / float64(tps),
		verbose:         cfg.Verbose,
	}

	if cfg.WatchPath != "" {
		w, err := config.WatchLevelConfig(cfg.WatchPath)
		if err != nil {
			return nil, fmt.Errorf("监听关卡配置失败: %w", err)
		}
		a.watcher = w
	}

	sim.Start()
	log.Printf("[App] Level started with %d obstacles", sim.ObstacleCount())
	return a, nil
}

// Update 更新游戏逻辑
func (a *App) Update() error {
	a.handleInput()
	a.Tick()
	return nil
}

func (a *App) handleInput() {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			a.applyWindowSize()
			a.pendingWindowSizeReset = false
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		a.settingsManager.ToggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s := a.settingsManager.GetSettings()
		a.settingsManager.SetSoundEnabled(!s.SoundEnabled)
	}
}

// Tick 推进一个固定时间步：处理热更新、模拟、镜像清理与通过提示
func (a *App) Tick() {
	a.drainWatcher()

	a.simulator.Update(a.deltaTime)
	a.mirror.Update(a.deltaTime)

	if passed := a.simulator.PassedCount(); passed > a.lastPassed {
		a.lastPassed = passed
		a.audioManager.PlayPassChime()
	}
}

// drainWatcher 非阻塞地读取配置更新，只热更新难度表
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	open := a.watcher.Drain(func(cfg *config.LevelConfig) {
		if err := a.simulator.ApplyDifficultyTable(cfg.DifficultyTable()); err != nil {
			log.Printf("[App] Rejected difficulty table: %v", err)
			return
		}
		log.Printf("[App] Difficulty table reloaded, now at tier %s", a.simulator.TierName())
	}, func(err error) {
		log.Printf("[App] Level config error: %v", err)
	})
	if !open {
		a.watcher = nil
	}
}

// TogglePause 暂停或继续模拟
func (a *App) TogglePause() {
	if a.simulator.IsPaused() {
		a.simulator.Resume()
	} else {
		a.simulator.Pause()
	}
}

// Restart 记录本局成绩并重新开局
func (a *App) Restart() {
	a.recordBest()
	a.simulator.Start()
	a.mirror.Update(0)
	a.lastPassed = 0
}

func (a *App) recordBest() {
	if a.settingsManager.RecordPassed(a.simulator.PassedCount()) {
		log.Printf("[App] New best: %d", a.simulator.PassedCount())
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.pipeRender.Draw(screen)

	for i, line := range a.HUDLines() {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
}

// HUDLines 返回左上角显示的文字
func (a *App) HUDLines() []string {
	sim := a.simulator
	best := a.settingsManager.GetSettings().BestPassed
	score := fmt.Sprintf("Passed: %d  Best: %d", sim.PassedCount(), max(best, sim.PassedCount()))
	if best > 0 && sim.PassedCount() > best {
		score += "  NEW BEST!"
	}
	lines := []string{
		score,
		fmt.Sprintf("Difficulty: %s", sim.TierName()),
	}
	if sim.IsPaused() {
		lines = append(lines, "PAUSED (P to resume)")
	}
	if a.settingsManager.GetSettings().ShowDebug {
		lines = append(lines,
			fmt.Sprintf("Spawned: %d  Obstacles: %d", sim.SpawnCount(), sim.ObstacleCount()),
			fmt.Sprintf("Gap: %.1f  Interval: %.2fs  Timer: %.2fs", sim.GapSize(), sim.SpawnIntervalMax(), sim.SpawnTimer()),
			fmt.Sprintf("Entities: %d  TPS: %.0f", a.entityManager.EntityCount(), ebiten.ActualTPS()),
		)
	}
	return lines
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// WindowSize 按设置中的缩放倍数计算窗口尺寸
func (a *App) WindowSize() (int, int) {
	scale := a.settingsManager.GetSettings().WindowScale
	return ScreenWidth * scale, ScreenHeight * scale
}

func (a *App) applyWindowSize() {
	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	log.Printf("[App] SetWindowSize(%d, %d)", w, h)
}

// Simulator 返回关卡模拟器
func (a *App) Simulator() *level.Simulator {
	return a.simulator
}

// SettingsManager 返回设置管理器
func (a *App) SettingsManager() *game.SettingsManager {
	return a.settingsManager
}

// Close 保存设置并停止配置监听
func (a *App) Close() error {
	a.recordBest()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to close watcher: %v", err)
		}
		a.watcher = nil
	}
	return a.settingsManager.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
