package components

import "image/color"

// PipeVisualComponent 管道的绘制参数
//
// 头部与主体的垂直位置由 level.Geometry.Placement 算出，
// 在生成时写入，之后只随 PositionComponent.X 平移。
type PipeVisualComponent struct {
	HeadCenterY float64 // 头部中心 Y（世界坐标）
	BodyBaseY   float64 // 主体锚点 Y：底部管道为区域底边，顶部管道为区域顶边
	FlipY       bool    // 主体从锚点向下延伸

	BodyColor color.RGBA
	HeadColor color.RGBA
}
