package level

import "math"

// fixedRandom 在 [lo, hi] 内按固定比例取值
type fixedRandom struct {
	frac  float64
	calls [][2]float64
}

func (r *fixedRandom) Range(lo, hi float64) float64 {
	r.calls = append(r.calls, [2]float64{lo, hi})
	return lo + r.frac*(hi-lo)
}

// recordingListener 记录所有通知
type recordingListener struct {
	spawned   []SpawnedEvent
	moved     map[ObstacleID]int
	destroyed []ObstacleID
	// removedWhileListed 销毁回调触发时该管道是否仍在注册表中
	sim                *Simulator
	removedWhileListed []bool
}

func newRecordingListener() *recordingListener {
	return &recordingListener{moved: make(map[ObstacleID]int)}
}

func (l *recordingListener) OnObstacleSpawned(ev SpawnedEvent) {
	l.spawned = append(l.spawned, ev)
}

func (l *recordingListener) OnObstaclePositionChanged(id ObstacleID, _ float64) {
	l.moved[id]++
}

func (l *recordingListener) OnObstacleDestroyed(id ObstacleID) {
	l.destroyed = append(l.destroyed, id)
	if l.sim != nil {
		listed := false
		for _, o := range l.sim.Obstacles() {
			if o.ID == id {
				listed = true
			}
		}
		l.removedWhileListed = append(l.removedWhileListed, listed)
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// emptySettings 没有预置管道、首次生成很晚的设置，便于单独测试移动与删除
func emptySettings() Settings {
	s := DefaultSettings()
	s.InitialPairs = nil
	s.InitialSpawnTimer = 1000
	return s
}
