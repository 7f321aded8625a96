package level

// SpawnedEvent 障碍物生成通知
type SpawnedEvent struct {
	ID     ObstacleID
	IsTop  bool
	Height float64
	X      float64
}

// Listener 渲染/物理协作方接收的推送通知
// 所有回调都在 Start/Update 内同步调用
type Listener interface {
	// OnObstacleSpawned 创建尺寸为 Height、位于 X 的视觉与碰撞体
	OnObstacleSpawned(ev SpawnedEvent)
	// OnObstaclePositionChanged 每个 tick 对每个存活障碍物调用一次
	OnObstaclePositionChanged(id ObstacleID, x float64)
	// OnObstacleDestroyed 每个障碍物恰好调用一次，实现方仍应容忍重复调用
	OnObstacleDestroyed(id ObstacleID)
}

// NopListener 忽略所有通知
type NopListener struct{}

func (NopListener) OnObstacleSpawned(SpawnedEvent)                 {}
func (NopListener) OnObstaclePositionChanged(ObstacleID, float64) {}
func (NopListener) OnObstacleDestroyed(ObstacleID)                {}

// MultiListener 按顺序把通知转发给多个 Listener
type MultiListener []Listener

func (m MultiListener) OnObstacleSpawned(ev SpawnedEvent) {
	for _, l := range m {
		l.OnObstacleSpawned(ev)
	}
}

func (m MultiListener) OnObstaclePositionChanged(id ObstacleID, x float64) {
	for _, l := range m {
		l.OnObstaclePositionChanged(id, x)
	}
}

func (m MultiListener) OnObstacleDestroyed(id ObstacleID) {
	for _, l := range m {
		l.OnObstacleDestroyed(id)
	}
}
