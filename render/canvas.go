// Package render draws the tree's debug overlay onto a character grid,
// looking down the Y axis onto the X/Z plane.
package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/bvh"
	"github.com/setanarut/vec"
)

type color uint8

const (
	colorNone color = iota
	colorRed
	colorGreen
	colorBlue
	colorWhite
	colorLight
	colorDim
	colorDark
)

var colorStyles = map[color]lipgloss.Style{
	colorNone:  lipgloss.NewStyle(),
	colorRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	colorGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	colorBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	colorWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	colorLight: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	colorDim:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	colorDark:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

type cell struct {
	r     rune
	color color
}

// Canvas is a bvh.Drawer that rasterizes boxes and lines into a width x height grid.
// Boxes become rectangle outlines of their X/Z footprint.
type Canvas struct {
	width, height int
	min, max      vec.Vec2
	cells         []cell
}

var _ bvh.Drawer = (*Canvas)(nil)

// NewCanvas returns a canvas showing the X/Z window of bounds.
func NewCanvas(width, height int, bounds bvh.AABB) *Canvas {
	c := &Canvas{
		width:  max(width, 1),
		height: max(height, 1),
		min:    vec.Vec2{X: bounds.Min[0], Y: bounds.Min[2]},
		max:    vec.Vec2{X: bounds.Max[0], Y: bounds.Max[2]},
	}
	c.cells = make([]cell, c.width*c.height)
	c.Clear()
	return c
}

func (c *Canvas) Width() int { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

// Rune returns the character at column x, row y.
func (c *Canvas) Rune(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y*c.width+x].r
}

// Project maps a world point to fractional grid coordinates.
func (c *Canvas) Project(p mgl64.Vec3) vec.Vec2 {
	span := c.max.Sub(c.min)
	rel := vec.Vec2{X: p[0], Y: p[2]}.Sub(c.min)
	return vec.Vec2{
		X: rel.X / span.X * float64(c.width-1),
		Y: rel.Y / span.Y * float64(c.height-1),
	}
}

func (c *Canvas) cellOf(p mgl64.Vec3) (int, int) {
	g := c.Project(p)
	return int(math.Round(g.X)), int(math.Round(g.Y))
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) set(x, y int, r rune, col color) {
	if c.inside(x, y) {
		c.cells[y*c.width+x] = cell{r: r, color: col}
	}
}

// DrawWireCube draws the X/Z outline of the transformed unit cube.
func (c *Canvas) DrawWireCube(transform mgl64.Mat4, fc bvh.FColor) {
	center := transform.Col(3).Vec3()
	half := mgl64.Vec3{transform.At(0, 0) / 2, transform.At(1, 1) / 2, transform.At(2, 2) / 2}
	x0, y0 := c.cellOf(center.Sub(half))
	x1, y1 := c.cellOf(center.Add(half))
	col := toColor(fc)

	for x := x0; x <= x1; x++ {
		c.set(x, y0, '-', col)
		c.set(x, y1, '-', col)
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, '|', col)
		c.set(x1, y, '|', col)
	}
	c.set(x0, y0, '+', col)
	c.set(x1, y0, '+', col)
	c.set(x0, y1, '+', col)
	c.set(x1, y1, '+', col)
}

// DrawLine samples the segment once per cell along its longer grid axis.
func (c *Canvas) DrawLine(a, b mgl64.Vec3, fc bvh.FColor) {
	pa, pb := c.Project(a), c.Project(b)
	d := pb.Sub(pa)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	col := toColor(fc)
	for i := 0; i <= steps; i++ {
		p := pa
		if steps > 0 {
			p = pa.Add(d.Scale(float64(i) / float64(steps)))
		}
		c.set(int(math.Round(p.X)), int(math.Round(p.Y)), '*', col)
	}
}

// String renders the grid with ANSI colors, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < c.width {
			start := c.cells[y*c.width+x].color
			var run strings.Builder
			for x < c.width && c.cells[y*c.width+x].color == start {
				run.WriteRune(c.cells[y*c.width+x].r)
				x++
			}
			sb.WriteString(colorStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}

// Plain renders the grid without colors.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range c.width {
			sb.WriteRune(c.cells[y*c.width+x].r)
		}
	}
	return sb.String()
}

func toColor(fc bvh.FColor) color {
	switch fc {
	case bvh.ColorRed:
		return colorRed
	case bvh.ColorGreen:
		return colorGreen
	case bvh.ColorBlue:
		return colorBlue
	}
	// branch shades
	switch l := (fc.R + fc.G + fc.B) / 3; {
	case l > 0.9:
		return colorWhite
	case l > 0.6:
		return colorLight
	case l > 0.3:
		return colorDim
	default:
		return colorDark
	}
}
