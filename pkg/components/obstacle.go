package components

import "github.com/gonewx/flappy/pkg/level"

// ObstacleComponent 把 ECS 实体关联到模拟器中的一根管道
type ObstacleComponent struct {
	ObstacleID level.ObstacleID
	IsTop      bool    // 顶部管道从区域顶边向下延伸
	Height     float64 // 管道主体高度（世界单位），创建后不变
}

// PositionComponent 实体在世界坐标系中的位置
// Y 轴向上，原点在可视区域中心
type PositionComponent struct {
	X, Y float64
}
