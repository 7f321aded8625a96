package level

import (
	"fmt"
	"log"
)

// Simulator 关卡模拟状态机
//
// 职责：
//   - 每个 tick 移动所有管道，检测通过与出界
//   - 按难度表节奏生成新的管道对
//   - 维护 spawnCount / passedCount
//
// 线程模型：单线程，由宿主循环每帧调用一次 Update，不需要加锁。
// 宿主停止调用 Update 即可暂停，状态在两次调用之间始终有效。
type Simulator struct {
	settings Settings
	registry *Registry
	listener Listener
	rng      RandomSource

	nextID ObstacleID

	spawnCount  int
	passedCount int
	spawnTimer  float64

	// gapSize / spawnIntervalMax 只由 applyDifficulty 写入
	gapSize          float64
	spawnIntervalMax float64
	tier             int

	paused  bool
	verbose bool
}

// NewSimulator 创建关卡模拟器
//
// 参数：
//   - settings: 关卡设置，会先经过 Validate
//   - rng: 随机源，nil 时使用时间种子的默认实现
//   - listener: 渲染/物理协作方，nil 时忽略通知
//
// 返回：
//   - *Simulator: 尚未 Start 的模拟器
//   - error: 设置不合法时返回
func NewSimulator(settings Settings, rng RandomSource, listener Listener) (*Simulator, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new simulator: %w", err)
	}
	if rng == nil {
		rng = NewRandomSource(0)
	}
	if listener == nil {
		listener = NopListener{}
	}
	s := &Simulator{
		settings: settings.clone(),
		registry: NewRegistry(),
		listener: listener,
		rng:      rng,
	}
	s.applyDifficulty()
	return s, nil
}

// SetVerbose 是否输出逐事件日志
func (s *Simulator) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Start 初始化关卡
//
// 执行流程：
//  1. 清空已有管道（重新开始时会为每根管道发送销毁通知）
//  2. 计数归零，套用 spawnCount = 0 的难度档位
//  3. 生成计时器设为 InitialSpawnTimer（首次动态生成前的宽限期）
//  4. 预置 InitialPairs，不计入 spawnCount
func (s *Simulator) Start() {
	s.registry.Clear(func(o *Obstacle) {
		s.listener.OnObstacleDestroyed(o.ID())
	})

	s.spawnCount = 0
	s.passedCount = 0
	s.paused = false
	s.applyDifficulty()
	s.spawnTimer = s.settings.InitialSpawnTimer

	for _, pair := range s.settings.InitialPairs {
		s.createPipe(pair.BottomHeight, pair.X, false)
		s.createPipe(pair.TopHeight, pair.X, true)
	}

	log.Printf("[LevelSimulator] Started: %d initial obstacles, gap %.2f, first spawn in %.2fs",
		s.registry.Len(), s.gapSize, s.spawnTimer)
}

// Update 以配置的移动速度推进一个 tick
// 调用方保证 deltaTime 有限且 >= 0
func (s *Simulator) Update(deltaTime float64) {
	s.Step(deltaTime, s.settings.Geometry.MoveSpeed)
}

// Step 推进一个 tick
//
// 执行流程：
//  1. 移动每根管道；移动前位于原点右侧、移动后位于原点或左侧的记为通过
//  2. 移除位置严格小于 DestroyX 的管道，移除前发送销毁通知
//  3. 生成计时器递减；小于 0 时累加 spawnIntervalMax（保留余量）并触发一次生成
//
// 参数：
//   - deltaTime: 距上一帧的秒数，调用方保证有限且 >= 0
//   - moveSpeed: 本帧的水平移动速度
func (s *Simulator) Step(deltaTime, moveSpeed float64) {
	if s.paused {
		return
	}

	origin := s.settings.Geometry.OriginX
	s.registry.ForEach(func(o *Obstacle) {
		wasAhead := o.Position() > origin
		o.Advance(deltaTime, moveSpeed)
		if wasAhead && o.Position() <= origin {
			s.passedCount++
			if s.verbose {
				log.Printf("[LevelSimulator] Obstacle %d passed (total %d)", o.ID(), s.passedCount)
			}
		}
		s.listener.OnObstaclePositionChanged(o.ID(), o.Position())
	})

	destroyX := s.settings.Geometry.DestroyX
	s.registry.RemoveWhere(
		func(o *Obstacle) bool { return o.Position() < destroyX },
		func(o *Obstacle) { s.listener.OnObstacleDestroyed(o.ID()) },
	)

	s.spawnTimer -= deltaTime
	if s.spawnTimer < 0 {
		s.spawnTimer += s.spawnIntervalMax
		s.spawn()
	}
}

// spawn 在生成线处创建一对管道
// 间隙几何不可能成立时 panic：这是配置错误，不做截断
func (s *Simulator) spawn() {
	g := s.settings.Geometry
	minY, maxY, err := g.GapCenterBounds(s.gapSize)
	if err != nil {
		panic(fmt.Errorf("[LevelSimulator] spawn %d: %w", s.spawnCount+1, err))
	}

	gapY := s.rng.Range(minY, maxY)
	bottom, top := g.PairHeights(gapY, s.gapSize)
	s.createPipe(bottom, g.SpawnX, false)
	s.createPipe(top, g.SpawnX, true)

	s.spawnCount++
	if s.verbose {
		log.Printf("[LevelSimulator] Spawn #%d: gapY %.2f, bottom %.2f, top %.2f",
			s.spawnCount, gapY, bottom, top)
	}
	s.applyDifficulty()
}

func (s *Simulator) createPipe(height, x float64, isTop bool) {
	s.nextID++
	o := NewObstacle(s.nextID, x, isTop, height)
	s.registry.Add(o)
	s.listener.OnObstacleSpawned(SpawnedEvent{
		ID:     o.ID(),
		IsTop:  isTop,
		Height: height,
		X:      x,
	})
}

// applyDifficulty 按当前 spawnCount 从难度表重新取 gapSize 与 spawnIntervalMax
func (s *Simulator) applyDifficulty() {
	idx := s.settings.Difficulty.TierIndex(s.spawnCount)
	tier := s.settings.Difficulty[idx]
	if idx != s.tier {
		log.Printf("[LevelSimulator] Difficulty %s -> %s at spawn %d (gap %.2f, interval %.2fs)",
			s.settings.Difficulty[s.tier].Name, tier.Name, s.spawnCount, tier.GapSize, tier.SpawnIntervalMax)
	}
	s.tier = idx
	s.gapSize = tier.GapSize
	s.spawnIntervalMax = tier.SpawnIntervalMax
}

// ApplyDifficultyTable 替换难度表（配置热更新）
// 立即按当前 spawnCount 重新计算难度参数；生成计时器保持不变
func (s *Simulator) ApplyDifficultyTable(table DifficultyTable) error {
	if err := table.Validate(s.settings.Geometry); err != nil {
		return fmt.Errorf("apply difficulty table: %w", err)
	}
	s.settings.Difficulty = append(DifficultyTable(nil), table...)
	if s.tier >= len(table) {
		s.tier = 0
	}
	s.applyDifficulty()
	log.Printf("[LevelSimulator] Difficulty table reloaded: %d tiers", len(table))
	return nil
}

// Pause 暂停模拟，Update 变为空操作
func (s *Simulator) Pause() {
	s.paused = true
}

// Resume 恢复模拟
func (s *Simulator) Resume() {
	s.paused = false
}

func (s *Simulator) IsPaused() bool { return s.paused }

// SpawnCount 返回已发生的生成事件数（每次两根管道）
func (s *Simulator) SpawnCount() int { return s.spawnCount }

// PassedCount 返回已通过原点的管道数
func (s *Simulator) PassedCount() int { return s.passedCount }

func (s *Simulator) GapSize() float64 { return s.gapSize }

func (s *Simulator) SpawnIntervalMax() float64 { return s.spawnIntervalMax }

func (s *Simulator) SpawnTimer() float64 { return s.spawnTimer }

// Difficulty 返回当前难度档位
func (s *Simulator) Difficulty() Difficulty { return Difficulty(s.tier) }

// TierName 返回当前难度档位名称
func (s *Simulator) TierName() string { return s.settings.Difficulty[s.tier].Name }

func (s *Simulator) Geometry() Geometry { return s.settings.Geometry }

// ObstacleCount 返回存活管道数
func (s *Simulator) ObstacleCount() int { return s.registry.Len() }

// Obstacles 返回存活管道的快照，供轮询式协作方使用
func (s *Simulator) Obstacles() []ObstacleState { return s.registry.Snapshot() }
