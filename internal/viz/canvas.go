package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid. Each cell also carries the colour of the
// last dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tags          [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tags:   make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tags[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set sets a pixel at (x, y) in sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.SetTagged(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func (c *Canvas) SetTagged(x, y int, tag color.RGBA) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Tags[row][col] = tag
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	c.Grid[row][col] |= brailleBase
}

// Get reports whether the pixel is set.
func (c *Canvas) Get(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Tags[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle rasterizes a circle of radius r around (cx, cy) with the
// midpoint algorithm, either as an outline or filled. r == 0 draws a single
// pixel.
func (c *Canvas) DrawCircle(cx, cy, r int, filled bool, tag color.RGBA) {
	if r < 0 {
		return
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		if filled {
			c.span(cx-x, cx+x, cy+y, tag)
			c.span(cx-x, cx+x, cy-y, tag)
			c.span(cx-y, cx+y, cy+x, tag)
			c.span(cx-y, cx+y, cy-x, tag)
		} else {
			c.SetTagged(cx+x, cy+y, tag)
			c.SetTagged(cx-x, cy+y, tag)
			c.SetTagged(cx+x, cy-y, tag)
			c.SetTagged(cx-x, cy-y, tag)
			c.SetTagged(cx+y, cy+x, tag)
			c.SetTagged(cx-y, cy+x, tag)
			c.SetTagged(cx+y, cy-x, tag)
			c.SetTagged(cx-y, cy-x, tag)
		}

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) span(x0, x1, y int, tag color.RGBA) {
	for x := x0; x <= x1; x++ {
		c.SetTagged(x, y, tag)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each cell coloured by its tag. Runs of equal colour
// share one style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Tags[i][j] == c.Tags[i][start] {
				continue
			}
			b.WriteString(renderRun(string(row[start:j]), c.Tags[i][start]))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderRun(s string, tag color.RGBA) string {
	if tag.A == 0 {
		return s
	}
	return lipgloss.NewStyle().Foreground(TagColor(tag)).Render(s)
}

// TagColor converts a body tag to a terminal colour.
func TagColor(tag color.RGBA) lipgloss.Color {
	return lipgloss.Color(hexColor(int(tag.R), int(tag.G), int(tag.B)))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
