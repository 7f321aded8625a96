package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/flappy/pkg/level"
)

// Screen 终端绘制所需的最小接口，tcell.Screen 满足该接口
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

const (
	bodyRune = '█'
	headRune = '▓'
)

var (
	bodyStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle = tcell.StyleDefault.Foreground(tcell.ColorLime)
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	birdStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Renderer 把障碍物快照栅格化到字符网格
//
// 第 0 行留给 HUD，其余行容纳 [-HalfExtent, HalfExtent]。
// 字符大约高是宽的两倍，水平方向每单位的列数取垂直方向的两倍。
type Renderer struct {
	geometry level.Geometry
}

// NewRenderer 创建渲染器
func NewRenderer(geometry level.Geometry) *Renderer {
	return &Renderer{geometry: geometry}
}

// rowsPerUnit 每个世界单位对应的行数
func (r *Renderer) rowsPerUnit(height int) float64 {
	return float64(height-1) / r.geometry.TotalSpan()
}

// Column 世界 X 转列号
func (r *Renderer) Column(x float64, width, height int) int {
	colsPerUnit := 2 * r.rowsPerUnit(height)
	return int(math.Floor(float64(width)/2 + (x-r.geometry.OriginX)*colsPerUnit))
}

// Row 世界 Y 转行号，Y = HalfExtent 对应第 1 行
func (r *Renderer) Row(y float64, height int) int {
	return 1 + int(math.Floor((r.geometry.HalfExtent-y)*r.rowsPerUnit(height)))
}

// Draw 清屏并绘制所有管道、原点标记和 HUD
func (r *Renderer) Draw(screen Screen, obstacles []level.ObstacleState, hud string) {
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height <= 1 {
		screen.Show()
		return
	}

	for _, o := range obstacles {
		r.drawPipe(screen, o, width, height)
	}

	screen.SetContent(r.Column(r.geometry.OriginX, width, height), r.Row(0, height), '>', nil, birdStyle)

	for i, ch := range []rune(hud) {
		if i >= width {
			break
		}
		screen.SetContent(i, 0, ch, nil, hudStyle)
	}
	screen.Show()
}

func (r *Renderer) drawPipe(screen Screen, o level.ObstacleState, width, height int) {
	g := r.geometry
	left := max(r.Column(o.X-g.PipeWidth/2, width, height), 0)
	right := min(r.Column(o.X+g.PipeWidth/2, width, height), width-1)
	if left > right || o.Height <= 0 {
		return
	}

	// 管道在世界坐标中的上下沿
	lo, hi := -g.HalfExtent, -g.HalfExtent+o.Height
	if o.IsTop {
		lo, hi = g.HalfExtent-o.Height, g.HalfExtent
	}
	top := max(r.Row(hi, height), 1)
	bottom := min(r.Row(lo, height), height-1)

	for row := top; row <= bottom; row++ {
		// 头部在靠近间隙的一端
		ch, style := bodyRune, bodyStyle
		if (o.IsTop && row == bottom) || (!o.IsTop && row == top) {
			ch, style = headRune, headStyle
		}
		for col := left; col <= right; col++ {
			screen.SetContent(col, row, ch, nil, style)
		}
	}
}
