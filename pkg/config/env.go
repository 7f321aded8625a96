package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// HostConfig 宿主程序从环境变量读取的启动配置
// 命令行参数会在入口处覆盖这些值
type HostConfig struct {
	// LevelConfigPath 关卡配置路径，空表示使用内嵌默认配置
	LevelConfigPath string `env:"FLAPPY_LEVEL_CONFIG"`
	// Seed 随机种子，0 表示按时间生成
	Seed uint64 `env:"FLAPPY_SEED" envDefault:"0"`
	// Verbose 输出详细日志
	Verbose bool `env:"FLAPPY_VERBOSE"`
	// TicksPerSecond 模拟频率
	TicksPerSecond int `env:"FLAPPY_TPS" envDefault:"60"`
	// Watch 监听关卡配置文件并热更新难度表
	Watch bool `env:"FLAPPY_WATCH"`
	// AppName 设置存储使用的应用名
	AppName string `env:"FLAPPY_APP_NAME" envDefault:"flappy"`
}

// ParseEnv 从环境变量加载配置
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadHostConfig 读取并校验宿主配置
func LoadHostConfig() (HostConfig, error) {
	var cfg HostConfig
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.TicksPerSecond <= 0 {
		return cfg, fmt.Errorf("%w: FLAPPY_TPS must be > 0, got %d", ErrInvalidConfig, cfg.TicksPerSecond)
	}
	if cfg.Watch && cfg.LevelConfigPath == "" {
		return cfg, fmt.Errorf("%w: FLAPPY_WATCH requires FLAPPY_LEVEL_CONFIG", ErrInvalidConfig)
	}
	return cfg, nil
}

// LoadLevel 按宿主配置加载关卡配置：指定路径则读文件，否则使用内嵌默认配置
func (h HostConfig) LoadLevel() (*LevelConfig, error) {
	if h.LevelConfigPath == "" {
		return DefaultLevelConfig()
	}
	return LoadLevelConfig(h.LevelConfigPath)
}
