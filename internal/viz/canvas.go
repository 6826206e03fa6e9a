package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots, offset from 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y); the canvas spans
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a Bresenham line between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// Quiver draws one segment per sampled grid point, scaled so the longest
// arrow spans one sampling cell. Row 0 of the field is drawn at the bottom.
func (c *Canvas) Quiver(ux, uy [][]float64, stride int) {
	n := len(ux)
	if n == 0 {
		return
	}
	if stride < 1 {
		stride = 1
	}

	maxMag := 0.0
	for r := 0; r < n; r += stride {
		for col := 0; col < n; col += stride {
			maxMag = math.Max(maxMag, math.Hypot(ux[r][col], uy[r][col]))
		}
	}
	if maxMag == 0 {
		return
	}

	dotsX, dotsY := float64(c.Width*2), float64(c.Height*4)
	cellX := dotsX * float64(stride) / float64(n)
	cellY := dotsY * float64(stride) / float64(n)
	for r := 0; r < n; r += stride {
		for col := 0; col < n; col += stride {
			x0 := float64(col) / float64(n) * dotsX
			y0 := dotsY - 1 - float64(r)/float64(n)*dotsY
			x1 := x0 + ux[r][col]/maxMag*cellX
			y1 := y0 - uy[r][col]/maxMag*cellY
			c.DrawLine(int(x0), int(y0), int(math.Round(x1)), int(math.Round(y1)))
		}
	}
}

// Lit counts the dots currently set.
func (c *Canvas) Lit() int {
	count := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - brailleBlank); bits != 0; bits &= bits - 1 {
				count++
			}
		}
	}
	return count
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
