package systems

import (
	"image/color"
	"log"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/level"
)

var (
	pipeBodyColor = color.RGBA{R: 92, G: 184, B: 64, A: 255}
	pipeHeadColor = color.RGBA{R: 64, G: 144, B: 40, A: 255}
)

// ObstacleMirrorSystem 把模拟器的障碍物通知镜像为 ECS 实体
//
// 实现 level.Listener：生成时创建实体，移动时更新 PositionComponent，
// 销毁时标记实体待删除。实体在 Update 中统一清理。
type ObstacleMirrorSystem struct {
	entityManager *ecs.EntityManager
	geometry      level.Geometry
	entities      map[level.ObstacleID]ecs.EntityID
}

// NewObstacleMirrorSystem 创建镜像系统
func NewObstacleMirrorSystem(em *ecs.EntityManager, geometry level.Geometry) *ObstacleMirrorSystem {
	return &ObstacleMirrorSystem{
		entityManager: em,
		geometry:      geometry,
		entities:      make(map[level.ObstacleID]ecs.EntityID),
	}
}

// OnObstacleSpawned 为新管道创建实体
func (s *ObstacleMirrorSystem) OnObstacleSpawned(ev level.SpawnedEvent) {
	if _, exists := s.entities[ev.ID]; exists {
		log.Printf("[ObstacleMirrorSystem] Duplicate spawn for obstacle %d ignored", ev.ID)
		return
	}

	placement := s.geometry.Placement(ev.IsTop, ev.Height)

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.ObstacleComponent{
		ObstacleID: ev.ID,
		IsTop:      ev.IsTop,
		Height:     ev.Height,
	})
	s.entityManager.AddComponent(id, &components.PositionComponent{X: ev.X, Y: placement.BodyBaseY})
	s.entityManager.AddComponent(id, &components.PipeVisualComponent{
		HeadCenterY: placement.HeadCenterY,
		BodyBaseY:   placement.BodyBaseY,
		FlipY:       placement.FlipY,
		BodyColor:   pipeBodyColor,
		HeadColor:   pipeHeadColor,
	})
	s.entities[ev.ID] = id
}

// OnObstaclePositionChanged 同步管道的水平位置，未知 ID 直接忽略
func (s *ObstacleMirrorSystem) OnObstaclePositionChanged(obstacleID level.ObstacleID, x float64) {
	id, ok := s.entities[obstacleID]
	if !ok {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		pos.X = x
	}
}

// OnObstacleDestroyed 标记实体待删除，重复调用无副作用
func (s *ObstacleMirrorSystem) OnObstacleDestroyed(obstacleID level.ObstacleID) {
	id, ok := s.entities[obstacleID]
	if !ok {
		return
	}
	delete(s.entities, obstacleID)
	s.entityManager.DestroyEntity(id)
}

// Update 清理本帧销毁的实体
func (s *ObstacleMirrorSystem) Update(deltaTime float64) {
	s.entityManager.RemoveMarkedEntities()
}

// EntityFor 返回障碍物对应的实体
func (s *ObstacleMirrorSystem) EntityFor(obstacleID level.ObstacleID) (ecs.EntityID, bool) {
	id, ok := s.entities[obstacleID]
	return id, ok
}

// Count 当前镜像的障碍物数量
func (s *ObstacleMirrorSystem) Count() int {
	return len(s.entities)
}
