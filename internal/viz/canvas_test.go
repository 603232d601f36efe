package viz

import (
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"
)

var red = color.RGBA{R: 255, A: 255}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(3, 5)
	if !c.Get(3, 5) {
		t.Error("pixel should be set")
	}
	if c.Grid[1][1] == brailleBase {
		t.Error("cell should hold a dot")
	}

	c.Unset(3, 5)
	if c.Get(3, 5) {
		t.Error("pixel should be cleared")
	}
	if c.Grid[1][1] != brailleBase {
		t.Errorf("expected empty cell, got %U", c.Grid[1][1])
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1])
		if c.Get(p[0], p[1]) {
			t.Errorf("out of bounds pixel %v reported set", p)
		}
	}
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBase && r != '\n' }) {
		t.Error("out of bounds writes leaked into the grid")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(5, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if utf8.RuneCountInString(l) != 5 {
			t.Errorf("expected 5 cells, got %d", utf8.RuneCountInString(l))
		}
	}
}

func TestCircleZeroRadius(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawCircle(6, 6, 0, false, red)

	count := 0
	pw, ph := c.Pixels()
	for x := 0; x < pw; x++ {
		for y := 0; y < ph; y++ {
			if c.Get(x, y) {
				count++
			}
		}
	}
	if count != 1 || !c.Get(6, 6) {
		t.Errorf("expected only the centre pixel, got %d pixels", count)
	}
	if c.Tags[1][3] != red {
		t.Errorf("expected tag on centre cell, got %v", c.Tags[1][3])
	}
}

func TestCircleOutline(t *testing.T) {
	c := NewCanvas(20, 10)
	cx, cy, r := 20, 20, 5
	c.DrawCircle(cx, cy, r, false, red)

	for _, p := range [][2]int{{cx + r, cy}, {cx - r, cy}, {cx, cy + r}, {cx, cy - r}} {
		if !c.Get(p[0], p[1]) {
			t.Errorf("extreme point %v missing", p)
		}
	}
	if c.Get(cx, cy) {
		t.Error("outline should not fill the centre")
	}

	pw, ph := c.Pixels()
	for x := 0; x < pw; x++ {
		for y := 0; y < ph; y++ {
			if c.Get(x, y) != c.Get(2*cx-x, y) {
				t.Fatalf("outline not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestCircleFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	cx, cy, r := 20, 20, 4
	c.DrawCircle(cx, cy, r, true, red)

	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			inside := dx*dx+dy*dy <= (r-1)*(r-1)
			if inside && !c.Get(cx+dx, cy+dy) {
				t.Errorf("interior pixel (%d,%d) not filled", dx, dy)
			}
			if dx*dx+dy*dy > (r+1)*(r+1) && c.Get(cx+dx, cy+dy) {
				t.Errorf("pixel (%d,%d) outside the circle", dx, dy)
			}
		}
	}
}

func TestCircleClipped(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawCircle(0, 0, 6, true, red)
	c.DrawCircle(-20, -20, 3, true, red)
	c.DrawCircle(3, 3, -1, true, red)
	if !c.Get(0, 0) {
		t.Error("visible part of clipped circle missing")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawCircle(3, 6, 2, true, red)
	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != brailleBase || c.Tags[i][j] != (color.RGBA{}) {
				t.Fatalf("cell %d,%d not cleared", i, j)
			}
		}
	}
}

func TestRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(6, 2)
	c.DrawCircle(2, 2, 1, true, red)
	c.SetTagged(10, 6, color.RGBA{B: 255, A: 255})

	out := c.Render()
	for _, row := range c.Grid {
		if !strings.Contains(stripANSI(out), string(row)) {
			t.Errorf("rendered output lost row %q", string(row))
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestTagColor(t *testing.T) {
	if got := TagColor(color.RGBA{R: 255, G: 16, B: 1, A: 255}); got != "#ff1001" {
		t.Errorf("unexpected colour %s", got)
	}
}
