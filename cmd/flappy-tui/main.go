// flappy-tui 在终端中运行关卡模拟器
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/level"
	"github.com/gonewx/flappy/pkg/terminal"
)

func main() {
	host, err := config.LoadHostConfig()
	if err != nil {
		log.Fatalf("环境变量配置无效: %v", err)
	}

	configPath := flag.String("config", host.LevelConfigPath, "关卡配置文件路径（默认使用内嵌配置）")
	seed := flag.Uint64("seed", host.Seed, "随机种子，0 表示按时间生成")
	tps := flag.Int("tps", host.TicksPerSecond, "模拟频率")
	watch := flag.Bool("watch", host.Watch, "监听关卡配置文件并热更新难度表")
	logFile := flag.String("log", "", "日志文件（终端界面占用标准输出，默认丢弃日志）")
	mute := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	host.LevelConfigPath = *configPath
	host.Seed = *seed
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

	sim, err := level.NewSimulator(levelCfg.Settings(), level.NewRandomSource(host.Seed), nil)
	if err != nil {
		log.Fatalf("关卡设置无效: %v", err)
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("无法打开日志文件: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
		sim.SetVerbose(host.Verbose)
	} else {
		log.SetOutput(io.Discard)
	}

	opts := terminal.Options{
		TicksPerSecond: host.TicksPerSecond,
		Settings:       game.NewSettingsManager(game.OpenStorage(host.AppName)),
	}
	if !*mute {
		opts.Chime = terminal.NewSpeakerChime()
		defer opts.Chime.Close()
	}
	if host.Watch {
		w, err := config.WatchLevelConfig(host.LevelConfigPath)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("监听关卡配置失败: %v", err)
		}
		defer w.Close()
		opts.Watcher = w
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("无法创建终端: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("无法初始化终端: %v", err)
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim.Start()
	th := terminal.NewHost(screen, sim, opts)
	runErr := th.Run(ctx, events)
	th.RecordBest()
	screen.Fini()

	if err := opts.Settings.Save(); err != nil {
		log.Printf("保存设置失败: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Printf("运行结束: %v", runErr)
	}
}
