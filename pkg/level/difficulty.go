package level

import (
	"errors"
	"fmt"
)

// ErrInvalidDifficultyTable 难度表不合法
var ErrInvalidDifficultyTable = errors.New("level: invalid difficulty table")

// Difficulty 难度级别
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Impossible
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Impossible:
		return "impossible"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// DifficultyTier 难度表中的一档
type DifficultyTier struct {
	Name             string
	MinSpawnCount    int     // 该档生效的最小生成次数（含）
	GapSize          float64 // 上下管道之间的间隙
	SpawnIntervalMax float64 // 两次生成之间的间隔（秒）
}

// DifficultyTable 按 MinSpawnCount 升序排列的难度档位
type DifficultyTable []DifficultyTier

// DefaultDifficultyTable 返回默认难度表
//
//	spawnCount < 10  : gap 45, interval 1.35
//	10 ~ 19          : gap 37, interval 1.30
//	20 ~ 29          : gap 32, interval 1.20
//	>= 30            : gap 28, interval 1.10
func DefaultDifficultyTable() DifficultyTable {
	return DifficultyTable{
		{Name: Easy.String(), MinSpawnCount: 0, GapSize: 45, SpawnIntervalMax: 1.35},
		{Name: Medium.String(), MinSpawnCount: 10, GapSize: 37, SpawnIntervalMax: 1.30},
		{Name: Hard.String(), MinSpawnCount: 20, GapSize: 32, SpawnIntervalMax: 1.20},
		{Name: Impossible.String(), MinSpawnCount: 30, GapSize: 28, SpawnIntervalMax: 1.10},
	}
}

// TierIndex 返回 spawnCount 对应的档位下标
// 从最高档向下匹配，第一个满足 spawnCount >= MinSpawnCount 的档位胜出
// 负数 spawnCount 落在第 0 档
func (t DifficultyTable) TierIndex(spawnCount int) int {
	for i := len(t) - 1; i > 0; i-- {
		if spawnCount >= t[i].MinSpawnCount {
			return i
		}
	}
	return 0
}

// For 返回 spawnCount 对应的难度档位
// 对空表调用会 panic，调用方应先通过 Validate
func (t DifficultyTable) For(spawnCount int) DifficultyTier {
	return t[t.TierIndex(spawnCount)]
}

// Validate 检查难度表结构以及每档间隙是否能放入给定几何区域
func (t DifficultyTable) Validate(g Geometry) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidDifficultyTable)
	}
	if t[0].MinSpawnCount != 0 {
		return fmt.Errorf("%w: first tier must start at spawn count 0, got %d",
			ErrInvalidDifficultyTable, t[0].MinSpawnCount)
	}
	for i, tier := range t {
		if i > 0 && tier.MinSpawnCount <= t[i-1].MinSpawnCount {
			return fmt.Errorf("%w: tier %d (%s) minSpawnCount %d must exceed %d",
				ErrInvalidDifficultyTable, i, tier.Name, tier.MinSpawnCount, t[i-1].MinSpawnCount)
		}
		if tier.GapSize <= 0 {
			return fmt.Errorf("%w: tier %d (%s) gapSize must be > 0, got %v",
				ErrInvalidDifficultyTable, i, tier.Name, tier.GapSize)
		}
		if tier.SpawnIntervalMax <= 0 {
			return fmt.Errorf("%w: tier %d (%s) spawnIntervalMax must be > 0, got %v",
				ErrInvalidDifficultyTable, i, tier.Name, tier.SpawnIntervalMax)
		}
		if _, _, err := g.GapCenterBounds(tier.GapSize); err != nil {
			return fmt.Errorf("tier %d (%s): %w", i, tier.Name, err)
		}
	}
	return nil
}

// DifficultyParams 某一生成次数下的难度参数
type DifficultyParams struct {
	GapSize          float64
	SpawnIntervalMax float64
}

var defaultTable = DefaultDifficultyTable()

// DifficultyFor 使用默认难度表计算难度参数（纯函数）
func DifficultyFor(spawnCount int) DifficultyParams {
	tier := defaultTable.For(spawnCount)
	return DifficultyParams{GapSize: tier.GapSize, SpawnIntervalMax: tier.SpawnIntervalMax}
}
