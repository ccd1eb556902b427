package tui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/videoclub/internal/tui/styles"
)

// StarSize is the brightness layer of a star
type StarSize int

const (
	StarSmall StarSize = iota
	StarMedium
	StarBig
)

// Star is one point of the backdrop
type Star struct {
	X, Y int
	Size StarSize
}

// starLayers mirrors the density of the browser star field: many faint
// stars, fewer bright ones. Values are stars per 1000 cells.
var starLayers = []struct {
	size    StarSize
	density int
}{
	{StarSmall, 40},
	{StarMedium, 8},
	{StarBig, 4},
}

var starGlyphs = map[StarSize]string{
	StarSmall:  "·",
	StarMedium: "∙",
	StarBig:    "✦",
}

var starStyles = map[StarSize]lipgloss.Style{
	StarSmall:  styles.StarSmallStyle,
	StarMedium: styles.StarMediumStyle,
	StarBig:    styles.StarBigStyle,
}

// Backdrop is a decorative star field. It holds no state besides the
// generated positions.
type Backdrop struct {
	width, height int
	stars         []Star
	rng           *rand.Rand
}

// NewBackdrop creates a backdrop using rng for star placement
func NewBackdrop(rng *rand.Rand) *Backdrop {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Backdrop{rng: rng}
}

// GenerateStars scatters amount stars of one size over a width×height area
func GenerateStars(rng *rand.Rand, amount, width, height int, size StarSize) []Star {
	if width <= 0 || height <= 0 || amount <= 0 {
		return nil
	}
	stars := make([]Star, amount)
	for i := range stars {
		stars[i] = Star{X: rng.IntN(width), Y: rng.IntN(height), Size: size}
	}
	return stars
}

// Resize regenerates the field for a new area
func (b *Backdrop) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.stars = nil
	area := width * height
	for _, layer := range starLayers {
		b.stars = append(b.stars, GenerateStars(b.rng, area*layer.density/1000, width, height, layer.size)...)
	}
}

// Stars returns the generated stars
func (b *Backdrop) Stars() []Star {
	return b.stars
}

// Render draws the star field as height lines of width cells. Brighter
// stars win when positions collide.
func (b *Backdrop) Render() string {
	if b.width <= 0 || b.height <= 0 {
		return ""
	}
	grid := make([][]int, b.height)
	for y := range grid {
		grid[y] = make([]int, b.width)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}
	for _, s := range b.stars {
		if int(s.Size) > grid[s.Y][s.X] {
			grid[s.Y][s.X] = int(s.Size)
		}
	}

	var sb strings.Builder
	for y, row := range grid {
		for _, cell := range row {
			if cell < 0 {
				sb.WriteByte(' ')
				continue
			}
			size := StarSize(cell)
			sb.WriteString(starStyles[size].Render(starGlyphs[size]))
		}
		if y < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
