// verify_difficulty 无界面运行关卡模拟器，检查难度曲线与几何约束
//
// 用法：
//
//	go run ./cmd/verify_difficulty --config data/level.yaml --seconds 120
//
// 发现违反约束时以非零状态退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/level"
)

const epsilon = 1e-9

var (
	configPath = flag.String("config", "", "关卡配置文件路径（默认使用内嵌配置）")
	seconds    = flag.Float64("seconds", 120, "模拟时长（秒）")
	tps        = flag.Int("tps", 60, "模拟频率")
	seed       = flag.Uint64("seed", 1, "随机种子")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// checker 通过 Listener 通知检查每一对新生成的管道
type checker struct {
	geometry level.Geometry
	sim      *level.Simulator

	pending    *level.SpawnedEvent
	alive      map[level.ObstacleID]bool
	violations []string
}

func (c *checker) fail(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

func (c *checker) OnObstacleSpawned(ev level.SpawnedEvent) {
	c.alive[ev.ID] = true
	if ev.X != c.geometry.SpawnX {
		return
	}
	if !ev.IsTop {
		c.pending = &ev
		return
	}
	if c.pending == nil || c.pending.ID+1 != ev.ID {
		c.fail("top pipe %d spawned without matching bottom pipe", ev.ID)
		return
	}

	// spawn 在通知之后才递增 spawnCount，此时 GapSize 仍是生成这一对时的值
	gap := c.sim.GapSize()
	sum := c.pending.Height + ev.Height + gap
	if math.Abs(sum-c.geometry.TotalSpan()) > epsilon {
		c.fail("pair %d/%d: bottom %.3f + top %.3f + gap %.3f != span %.3f",
			c.pending.ID, ev.ID, c.pending.Height, ev.Height, gap, c.geometry.TotalSpan())
	}
	if c.pending.Height < c.geometry.EdgeMargin-epsilon || ev.Height < c.geometry.EdgeMargin-epsilon {
		c.fail("pair %d/%d: pipe shorter than edge margin", c.pending.ID, ev.ID)
	}
	c.pending = nil
}

func (c *checker) OnObstaclePositionChanged(id level.ObstacleID, x float64) {
	if !c.alive[id] {
		c.fail("position update for unknown obstacle %d", id)
	}
	if x < c.geometry.DestroyX-c.geometry.MoveSpeed {
		c.fail("obstacle %d at %.3f is far past the destroy line", id, x)
	}
}

func (c *checker) OnObstacleDestroyed(id level.ObstacleID) {
	if !c.alive[id] {
		c.fail("obstacle %d destroyed twice or never spawned", id)
	}
	delete(c.alive, id)
}

// tally 统计各类通知的次数
type tally struct {
	spawned, moved, destroyed int
}

func (t *tally) OnObstacleSpawned(level.SpawnedEvent)                { t.spawned++ }
func (t *tally) OnObstaclePositionChanged(level.ObstacleID, float64) { t.moved++ }
func (t *tally) OnObstacleDestroyed(level.ObstacleID)                { t.destroyed++ }

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	levelCfg, err := loadLevel(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "关卡配置加载失败: %v\n", err)
		os.Exit(1)
	}
	settings := levelCfg.Settings()

	c := &checker{geometry: settings.Geometry, alive: make(map[level.ObstacleID]bool)}
	counts := &tally{}
	sim, err := level.NewSimulator(settings, level.NewRandomSource(*seed), level.MultiListener{c, counts})
	if err != nil {
		fmt.Fprintf(os.Stderr, "关卡设置无效: %v\n", err)
		os.Exit(1)
	}
	c.sim = sim
	sim.SetVerbose(*verbose)
	sim.Start()

	dt := 1.0 / float64(*tps)
	ticks := int(*seconds * float64(*tps))
	lastTier := sim.TierName()

	fmt.Printf("%-10s %-12s %-8s %-8s %-10s\n", "time(s)", "tier", "spawned", "passed", "gap")
	fmt.Printf("%-10.2f %-12s %-8d %-8d %-10.2f\n", 0.0, lastTier, 0, 0, sim.GapSize())

	for i := 1; i <= ticks; i++ {
		sim.Update(dt)

		if sim.ObstacleCount() != len(c.alive) {
			c.fail("tick %d: simulator has %d obstacles, listener saw %d", i, sim.ObstacleCount(), len(c.alive))
		}
		if sim.PassedCount() > sim.SpawnCount()*2+2*len(settings.InitialPairs) {
			c.fail("tick %d: passed %d exceeds obstacles created", i, sim.PassedCount())
		}
		if want := settings.Difficulty.For(sim.SpawnCount()); want.GapSize != sim.GapSize() {
			c.fail("tick %d: gap %.2f does not match tier %s (%.2f)", i, sim.GapSize(), want.Name, want.GapSize)
		}

		if tier := sim.TierName(); tier != lastTier {
			lastTier = tier
			fmt.Printf("%-10.2f %-12s %-8d %-8d %-10.2f\n", float64(i)*dt, tier, sim.SpawnCount(), sim.PassedCount(), sim.GapSize())
		}
	}

	fmt.Printf("\n模拟 %.1f 秒：生成 %d 对，通过 %d 根，最终难度 %s\n",
		*seconds, sim.SpawnCount(), sim.PassedCount(), sim.TierName())
	fmt.Printf("通知：生成 %d，移动 %d，销毁 %d，存活 %d\n",
		counts.spawned, counts.moved, counts.destroyed, sim.ObstacleCount())
	if counts.spawned-counts.destroyed != sim.ObstacleCount() {
		c.fail("spawned %d - destroyed %d != alive %d", counts.spawned, counts.destroyed, sim.ObstacleCount())
	}

	if len(c.violations) > 0 {
		fmt.Printf("\n发现 %d 处违反约束：\n", len(c.violations))
		for i, v := range c.violations {
			if i >= 20 {
				fmt.Printf("  ... 其余 %d 处省略\n", len(c.violations)-i)
				break
			}
			fmt.Printf("  - %s\n", v)
		}
		os.Exit(1)
	}
	fmt.Println("✅ 所有约束检查通过")
}

func loadLevel(path string) (*config.LevelConfig, error) {
	if path == "" {
		return config.DefaultLevelConfig()
	}
	return config.LoadLevelConfig(path)
}
