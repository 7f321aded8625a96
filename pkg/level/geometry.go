package level

import (
	"errors"
	"fmt"
)

// ErrGapExceedsField 间隙尺寸超出可玩区域
// 即 gapSize/2 + edgeMargin > totalSpan - gapSize/2 - edgeMargin
var ErrGapExceedsField = errors.New("level: gap exceeds playable field")

// ErrInvalidGeometry 几何常量不合法
var ErrInvalidGeometry = errors.New("level: invalid geometry")

// Geometry 关卡的固定几何常量（世界坐标单位）
type Geometry struct {
	HalfExtent     float64 // 可视区域垂直半高（相机正交尺寸）
	PipeWidth      float64 // 管道主体宽度
	PipeHeadHeight float64 // 管道头部高度
	MoveSpeed      float64 // 管道水平移动速度（单位/秒）
	DestroyX       float64 // 销毁阈值，位置严格小于该值时移除
	SpawnX         float64 // 新管道生成的 X 坐标
	OriginX        float64 // 玩家所在的 X 坐标，用于通过检测
	EdgeMargin     float64 // 间隙中心与区域边缘的最小距离
}

// DefaultGeometry 返回默认几何常量
func DefaultGeometry() Geometry {
	return Geometry{
		HalfExtent:     50,
		PipeWidth:      7.8,
		PipeHeadHeight: 3.75,
		MoveSpeed:      20,
		DestroyX:       -100,
		SpawnX:         100,
		OriginX:        0,
		EdgeMargin:     10,
	}
}

// Validate 检查几何常量
// 要求 DestroyX < OriginX < SpawnX，尺寸为正，速度与边距非负
func (g Geometry) Validate() error {
	switch {
	case g.HalfExtent <= 0:
		return fmt.Errorf("%w: halfExtent must be > 0, got %v", ErrInvalidGeometry, g.HalfExtent)
	case g.PipeWidth <= 0:
		return fmt.Errorf("%w: pipeWidth must be > 0, got %v", ErrInvalidGeometry, g.PipeWidth)
	case g.PipeHeadHeight < 0:
		return fmt.Errorf("%w: pipeHeadHeight must be >= 0, got %v", ErrInvalidGeometry, g.PipeHeadHeight)
	case g.MoveSpeed < 0:
		return fmt.Errorf("%w: moveSpeed must be >= 0, got %v", ErrInvalidGeometry, g.MoveSpeed)
	case g.EdgeMargin < 0:
		return fmt.Errorf("%w: edgeMargin must be >= 0, got %v", ErrInvalidGeometry, g.EdgeMargin)
	case !(g.DestroyX < g.OriginX && g.OriginX < g.SpawnX):
		return fmt.Errorf("%w: need destroyX < originX < spawnX, got %v, %v, %v",
			ErrInvalidGeometry, g.DestroyX, g.OriginX, g.SpawnX)
	}
	return nil
}

// TotalSpan 返回可视区域的总垂直跨度
func (g Geometry) TotalSpan() float64 {
	return g.HalfExtent * 2
}

// GapCenterBounds 计算间隙中心的合法取值范围 [min, max]
//
// 参数：
//   - gapSize: 当前间隙尺寸
//
// 返回：
//   - min, max: 间隙中心 Y 的上下限
//   - error: 当 min > max 时返回 ErrGapExceedsField
func (g Geometry) GapCenterBounds(gapSize float64) (float64, float64, error) {
	minY := gapSize*0.5 + g.EdgeMargin
	maxY := g.TotalSpan() - gapSize*0.5 - g.EdgeMargin
	if minY > maxY {
		return minY, maxY, fmt.Errorf("%w: gapSize %.2f needs [%.2f, %.2f] within span %.2f",
			ErrGapExceedsField, gapSize, minY, maxY, g.TotalSpan())
	}
	return minY, maxY, nil
}

// PairHeights 根据间隙中心和间隙尺寸计算上下管道高度
// 满足 bottom + top + gapSize == TotalSpan
func (g Geometry) PairHeights(gapCenterY, gapSize float64) (bottom, top float64) {
	bottom = gapCenterY - gapSize*0.5
	top = g.TotalSpan() - gapCenterY - gapSize*0.5
	return bottom, top
}

// Placement 管道在垂直方向上的渲染位置（世界坐标，Y 轴向上）
type Placement struct {
	HeadCenterY float64 // 管道头部中心 Y
	BodyBaseY   float64 // 管道主体的锚点 Y（区域底边或顶边）
	FlipY       bool    // 主体是否需要垂直翻转（顶部管道向下延伸）
}

// Placement 计算一根管道的头部与主体位置
// 底部管道从 -HalfExtent 向上延伸 height；顶部管道从 +HalfExtent 向下延伸 height
func (g Geometry) Placement(isTop bool, height float64) Placement {
	if isTop {
		return Placement{
			HeadCenterY: g.HalfExtent - height + g.PipeHeadHeight*0.5,
			BodyBaseY:   g.HalfExtent,
			FlipY:       true,
		}
	}
	return Placement{
		HeadCenterY: -g.HalfExtent + height - g.PipeHeadHeight*0.5,
		BodyBaseY:   -g.HalfExtent,
	}
}
