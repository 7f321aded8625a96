package level

import (
	"errors"
	"testing"
)

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		name       string
		spawnCount int
		gapSize    float64
		interval   float64
	}{
		{"初始", 0, 45, 1.35},
		{"简单上界", 9, 45, 1.35},
		{"中等下界", 10, 37, 1.30},
		{"中等上界", 19, 37, 1.30},
		{"困难下界", 20, 32, 1.20},
		{"困难上界", 29, 32, 1.20},
		{"不可能下界", 30, 28, 1.10},
		{"远超上界", 1000, 28, 1.10},
		{"负数落在第一档", -5, 45, 1.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DifficultyFor(tt.spawnCount)
			if got.GapSize != tt.gapSize || got.SpawnIntervalMax != tt.interval {
				t.Errorf("DifficultyFor(%d): expected {%v %v}, got {%v %v}",
					tt.spawnCount, tt.gapSize, tt.interval, got.GapSize, got.SpawnIntervalMax)
			}
		})
	}
}

func TestDifficultyTable_TierIndex(t *testing.T) {
	table := DefaultDifficultyTable()
	cases := map[int]Difficulty{0: Easy, 9: Easy, 10: Medium, 19: Medium, 20: Hard, 29: Hard, 30: Impossible}
	for count, want := range cases {
		if got := Difficulty(table.TierIndex(count)); got != want {
			t.Errorf("TierIndex(%d): expected %s, got %s", count, want, got)
		}
	}
}

func TestDifficultyTable_Validate(t *testing.T) {
	g := DefaultGeometry()

	tests := []struct {
		name    string
		table   DifficultyTable
		wantErr error
	}{
		{"默认表", DefaultDifficultyTable(), nil},
		{"空表", DifficultyTable{}, ErrInvalidDifficultyTable},
		{"首档不从0开始", DifficultyTable{{MinSpawnCount: 1, GapSize: 40, SpawnIntervalMax: 1}}, ErrInvalidDifficultyTable},
		{"阈值不递增", DifficultyTable{
			{MinSpawnCount: 0, GapSize: 40, SpawnIntervalMax: 1},
			{MinSpawnCount: 0, GapSize: 30, SpawnIntervalMax: 1},
		}, ErrInvalidDifficultyTable},
		{"间隙为0", DifficultyTable{{MinSpawnCount: 0, GapSize: 0, SpawnIntervalMax: 1}}, ErrInvalidDifficultyTable},
		{"间隔为0", DifficultyTable{{MinSpawnCount: 0, GapSize: 40, SpawnIntervalMax: 0}}, ErrInvalidDifficultyTable},
		// 90/2 + 10 = 55 > 100 - 45 - 10 = 45
		{"间隙超出区域", DifficultyTable{{MinSpawnCount: 0, GapSize: 90, SpawnIntervalMax: 1}}, ErrGapExceedsField},
		// 80/2 + 10 = 50 == 100 - 40 - 10，恰好可行
		{"间隙刚好放下", DifficultyTable{{MinSpawnCount: 0, GapSize: 80, SpawnIntervalMax: 1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate(g)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate: expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDifficulty_String(t *testing.T) {
	if Easy.String() != "easy" || Impossible.String() != "impossible" {
		t.Errorf("unexpected names: %s, %s", Easy, Impossible)
	}
	if Difficulty(7).String() != "difficulty(7)" {
		t.Errorf("unexpected fallback name: %s", Difficulty(7))
	}
}
