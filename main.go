package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/flappy/pkg/app"
	"github.com/gonewx/flappy/pkg/config"
)

func main() {
	host, err := config.LoadHostConfig()
	if err != nil {
		log.Fatalf("环境变量配置无效: %v", err)
	}

	// 命令行参数覆盖环境变量
	configPath := flag.String("config", host.LevelConfigPath, "关卡配置文件路径（默认使用内嵌配置）")
	seed := flag.Uint64("seed", host.Seed, "随机种子，0 表示按时间生成")
	verbose := flag.Bool("verbose", host.Verbose, "显示详细日志")
	tps := flag.Int("tps", host.TicksPerSecond, "模拟频率")
	watch := flag.Bool("watch", host.Watch, "监听关卡配置文件并热更新难度表")
	mute := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	host.LevelConfigPath = *configPath
	host.Seed = *seed
	host.Verbose = *verbose
	host.TicksPerSecond = *tps
	host.Watch = *watch

	if host.Watch && host.LevelConfigPath == "" {
		log.Fatal("--watch 需要同时指定 --config")
	}
	if host.TicksPerSecond <= 0 {
		log.Fatalf("--tps 必须大于 0，当前为 %d", host.TicksPerSecond)
	}

	levelCfg, err := host.LoadLevel()
	if err != nil {
		log.Fatalf("关卡配置加载失败: %v", err)
	}

	cfg := app.Config{
		Verbose:        host.Verbose,
		Seed:           host.Seed,
		Level:          levelCfg,
		TicksPerSecond: host.TicksPerSecond,
		AppName:        host.AppName,
		Mute:           *mute,
	}
	if host.Watch {
		cfg.WatchPath = host.LevelConfigPath
	}

	game, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	settings := game.SettingsManager().GetSettings()
	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.Fullscreen)
	ebiten.SetTPS(host.TicksPerSecond)

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("保存设置失败: %v", err)
	}
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
