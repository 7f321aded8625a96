package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/level"
)

// pipeHeadWidthScale 头部比主体略宽
const pipeHeadWidthScale = 1.15

// ScreenRect 屏幕坐标系中的矩形（像素，Y 轴向下）
type ScreenRect struct {
	X, Y, Width, Height float32
}

// PipeRenderSystem 用纯色矩形绘制管道
//
// 相机以 Geometry.OriginX 为水平中心，垂直方向正好容纳 [-HalfExtent, HalfExtent]。
type PipeRenderSystem struct {
	entityManager *ecs.EntityManager
	geometry      level.Geometry
	screenWidth   int
	screenHeight  int
}

// NewPipeRenderSystem 创建管道渲染系统
func NewPipeRenderSystem(em *ecs.EntityManager, geometry level.Geometry, screenWidth, screenHeight int) *PipeRenderSystem {
	return &PipeRenderSystem{
		entityManager: em,
		geometry:      geometry,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
	}
}

// PixelsPerUnit 每个世界单位对应的像素数
func (s *PipeRenderSystem) PixelsPerUnit() float64 {
	return float64(s.screenHeight) / s.geometry.TotalSpan()
}

// WorldToScreen 世界坐标转屏幕坐标
func (s *PipeRenderSystem) WorldToScreen(x, y float64) (float64, float64) {
	scale := s.PixelsPerUnit()
	sx := float64(s.screenWidth)/2 + (x-s.geometry.OriginX)*scale
	sy := float64(s.screenHeight)/2 - y*scale
	return sx, sy
}

// PipeRects 计算一根管道主体和头部的屏幕矩形
func (s *PipeRenderSystem) PipeRects(x float64, obs *components.ObstacleComponent, vis *components.PipeVisualComponent) (body, head ScreenRect) {
	scale := s.PixelsPerUnit()
	g := s.geometry

	// 主体：从锚点沿管道方向延伸 Height
	bodyTop := vis.BodyBaseY + obs.Height
	if vis.FlipY {
		bodyTop = vis.BodyBaseY
	}
	bx, by := s.WorldToScreen(x-g.PipeWidth/2, bodyTop)
	body = ScreenRect{
		X:      float32(bx),
		Y:      float32(by),
		Width:  float32(g.PipeWidth * scale),
		Height: float32(obs.Height * scale),
	}

	headWidth := g.PipeWidth * pipeHeadWidthScale
	hx, hy := s.WorldToScreen(x-headWidth/2, vis.HeadCenterY+g.PipeHeadHeight/2)
	head = ScreenRect{
		X:      float32(hx),
		Y:      float32(hy),
		Width:  float32(headWidth * scale),
		Height: float32(g.PipeHeadHeight * scale),
	}
	return body, head
}

// Draw 绘制所有管道
func (s *PipeRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith3[
		*components.ObstacleComponent,
		*components.PositionComponent,
		*components.PipeVisualComponent,
	](s.entityManager)

	for _, id := range entities {
		obs, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vis, _ := ecs.GetComponent[*components.PipeVisualComponent](s.entityManager, id)

		body, head := s.PipeRects(pos.X, obs, vis)
		vector.DrawFilledRect(screen, body.X, body.Y, body.Width, body.Height, vis.BodyColor, false)
		vector.DrawFilledRect(screen, head.X, head.Y, head.Width, head.Height, vis.HeadColor, false)
	}
}
