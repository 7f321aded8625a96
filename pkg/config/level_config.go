package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/gonewx/flappy/pkg/level"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置内容不合法
var ErrInvalidConfig = errors.New("config: invalid level config")

//go:embed data/default_level.yaml
var defaultLevelYAML []byte

// LevelConfig 关卡配置数据结构
// 定义了几何常量、难度档位和开局预置管道
type LevelConfig struct {
	Geometry          GeometryConfig         `yaml:"geometry"`          // 几何常量
	InitialSpawnTimer float64                `yaml:"initialSpawnTimer"` // 首次动态生成前的宽限时间（秒）
	Difficulty        []DifficultyTierConfig `yaml:"difficulty"`        // 难度档位，按 minSpawnCount 升序
	InitialPairs      []InitialPairConfig    `yaml:"initialPairs"`      // 开局预置的管道对
}

// GeometryConfig 几何常量配置（世界坐标单位）
type GeometryConfig struct {
	HalfExtent     float64 `yaml:"halfExtent"`     // 可视区域垂直半高
	PipeWidth      float64 `yaml:"pipeWidth"`      // 管道宽度
	PipeHeadHeight float64 `yaml:"pipeHeadHeight"` // 管道头部高度
	MoveSpeed      float64 `yaml:"moveSpeed"`      // 移动速度（单位/秒）
	DestroyX       float64 `yaml:"destroyX"`       // 销毁阈值
	SpawnX         float64 `yaml:"spawnX"`         // 生成位置
	OriginX        float64 `yaml:"originX"`        // 玩家位置
	EdgeMargin     float64 `yaml:"edgeMargin"`     // 间隙与边缘的最小距离
}

// DifficultyTierConfig 单个难度档位
type DifficultyTierConfig struct {
	Name             string  `yaml:"name"`
	MinSpawnCount    int     `yaml:"minSpawnCount"`    // 该档生效的最小生成次数（含）
	GapSize          float64 `yaml:"gapSize"`          // 间隙尺寸
	SpawnIntervalMax float64 `yaml:"spawnIntervalMax"` // 生成间隔（秒）
}

// InitialPairConfig 开局预置的一对管道
type InitialPairConfig struct {
	X            float64 `yaml:"x"`
	BottomHeight float64 `yaml:"bottomHeight"`
	TopHeight    float64 `yaml:"topHeight"`
}

// DefaultLevelConfig 解析内嵌的默认关卡配置
func DefaultLevelConfig() (*LevelConfig, error) {
	cfg, err := ParseLevelConfig(defaultLevelYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded default level: %w", err)
	}
	return cfg, nil
}

// LoadLevelConfig 从 YAML 文件加载关卡配置
// 参数：
//
//	filepath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析并校验后的配置
//	error - 文件读取、解析或校验失败时返回
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseLevelConfig 解析并校验 YAML 数据
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	if err := validateLevelConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateLevelConfig 验证配置的有效性
// 几何与间隙约束交给 level.Settings.Validate，这里只补充结构性检查
func validateLevelConfig(cfg *LevelConfig) error {
	if len(cfg.Difficulty) == 0 {
		return fmt.Errorf("%w: difficulty cannot be empty", ErrInvalidConfig)
	}
	for i, tier := range cfg.Difficulty {
		if tier.Name == "" {
			return fmt.Errorf("%w: difficulty[%d] name cannot be empty", ErrInvalidConfig, i)
		}
	}

	if err := cfg.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GeometryValues 转换为模拟器使用的几何常量
func (c *LevelConfig) GeometryValues() level.Geometry {
	g := c.Geometry
	return level.Geometry{
		HalfExtent:     g.HalfExtent,
		PipeWidth:      g.PipeWidth,
		PipeHeadHeight: g.PipeHeadHeight,
		MoveSpeed:      g.MoveSpeed,
		DestroyX:       g.DestroyX,
		SpawnX:         g.SpawnX,
		OriginX:        g.OriginX,
		EdgeMargin:     g.EdgeMargin,
	}
}

// DifficultyTable 转换为模拟器使用的难度表
func (c *LevelConfig) DifficultyTable() level.DifficultyTable {
	table := make(level.DifficultyTable, 0, len(c.Difficulty))
	for _, tier := range c.Difficulty {
		table = append(table, level.DifficultyTier{
			Name:             tier.Name,
			MinSpawnCount:    tier.MinSpawnCount,
			GapSize:          tier.GapSize,
			SpawnIntervalMax: tier.SpawnIntervalMax,
		})
	}
	return table
}

// Settings 转换为完整的模拟器设置
func (c *LevelConfig) Settings() level.Settings {
	pairs := make([]level.InitialPair, 0, len(c.InitialPairs))
	for _, p := range c.InitialPairs {
		pairs = append(pairs, level.InitialPair{X: p.X, BottomHeight: p.BottomHeight, TopHeight: p.TopHeight})
	}
	return level.Settings{
		Geometry:          c.GeometryValues(),
		Difficulty:        c.DifficultyTable(),
		InitialSpawnTimer: c.InitialSpawnTimer,
		InitialPairs:      pairs,
	}
}
