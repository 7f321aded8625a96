package level

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings 关卡设置不合法
var ErrInvalidSettings = errors.New("level: invalid settings")

// InitialPair 开局预置的一对管道
// 不经过生成事件，不计入 spawnCount
type InitialPair struct {
	X            float64
	BottomHeight float64
	TopHeight    float64
}

// Settings 模拟器的全部可调参数
type Settings struct {
	Geometry   Geometry
	Difficulty DifficultyTable
	// InitialSpawnTimer 第一次动态生成前的宽限时间（秒）
	InitialSpawnTimer float64
	InitialPairs      []InitialPair
}

// DefaultSettings 返回默认关卡设置
func DefaultSettings() Settings {
	return Settings{
		Geometry:          DefaultGeometry(),
		Difficulty:        DefaultDifficultyTable(),
		InitialSpawnTimer: 1.35,
		InitialPairs: []InitialPair{
			{X: 20, BottomHeight: 40, TopHeight: 30},
			{X: 60, BottomHeight: 30, TopHeight: 25},
		},
	}
}

// Validate 检查几何、难度表、初始计时器与预置管道
func (s Settings) Validate() error {
	if err := s.Geometry.Validate(); err != nil {
		return err
	}
	if err := s.Difficulty.Validate(s.Geometry); err != nil {
		return err
	}
	if s.InitialSpawnTimer <= 0 {
		return fmt.Errorf("%w: initialSpawnTimer must be > 0, got %v", ErrInvalidSettings, s.InitialSpawnTimer)
	}
	span := s.Geometry.TotalSpan()
	for i, p := range s.InitialPairs {
		if p.BottomHeight < 0 || p.TopHeight < 0 {
			return fmt.Errorf("%w: initial pair %d has negative height", ErrInvalidSettings, i)
		}
		if p.BottomHeight+p.TopHeight > span {
			return fmt.Errorf("%w: initial pair %d heights %.2f + %.2f exceed span %.2f",
				ErrInvalidSettings, i, p.BottomHeight, p.TopHeight, span)
		}
		if p.X <= s.Geometry.DestroyX || p.X > s.Geometry.SpawnX {
			return fmt.Errorf("%w: initial pair %d x %.2f outside (%.2f, %.2f]",
				ErrInvalidSettings, i, p.X, s.Geometry.DestroyX, s.Geometry.SpawnX)
		}
	}
	return nil
}

func (s Settings) clone() Settings {
	s.Difficulty = append(DifficultyTable(nil), s.Difficulty...)
	s.InitialPairs = append([]InitialPair(nil), s.InitialPairs...)
	return s
}
