package level

// ObstacleID 障碍物的唯一标识，从 1 开始分配，0 保留为无效 ID
type ObstacleID uint64

// Obstacle 一根管道（上管道或下管道）
// 创建后只有水平位置会变化
type Obstacle struct {
	id     ObstacleID
	x      float64
	isTop  bool
	height float64

	removed bool
}

// NewObstacle 创建障碍物
func NewObstacle(id ObstacleID, x float64, isTop bool, height float64) *Obstacle {
	return &Obstacle{id: id, x: x, isTop: isTop, height: height}
}

// Advance 按速度和时间步长向左移动
func (o *Obstacle) Advance(deltaTime, speed float64) {
	o.x -= speed * deltaTime
}

func (o *Obstacle) ID() ObstacleID { return o.id }

func (o *Obstacle) Position() float64 { return o.x }

// VerticalExtent 返回管道主体高度，供渲染层使用
func (o *Obstacle) VerticalExtent() float64 { return o.height }

func (o *Obstacle) IsTop() bool { return o.isTop }

// ObstacleState 障碍物的只读快照
type ObstacleState struct {
	ID     ObstacleID
	X      float64
	IsTop  bool
	Height float64
}

func (o *Obstacle) snapshot() ObstacleState {
	return ObstacleState{ID: o.id, X: o.x, IsTop: o.isTop, Height: o.height}
}
