// Package export renders generated floors to visualization formats for
// debugging and design review.
package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/ashfall/worldcore/pkg/floor"
	"github.com/ashfall/worldcore/pkg/layout"
)

// SVGOptions configures floor tile-grid visualization export.
type SVGOptions struct {
	CellSize  int    // Pixel size of one tile (default: 24)
	Margin    int    // Canvas margin in pixels (default: 20)
	ShowGrid  bool   // Draw gridlines between tiles
	Title     string // Optional title drawn above the grid
	ShowStats bool   // Draw floor id/seed/biome below the title
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:  24,
		Margin:    20,
		ShowGrid:  true,
		Title:     "Floor",
		ShowStats: true,
	}
}

// ExportSVG renders chunk's tile grid as an SVG image.
func ExportSVG(chunk *floor.ChunkData, opts SVGOptions) ([]byte, error) {
	if chunk == nil {
		return nil, fmt.Errorf("export: chunk cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 24
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}

	headerHeight := 0
	if opts.Title != "" {
		headerHeight += 30
	}
	if opts.ShowStats {
		headerHeight += 20
	}

	width := chunk.Width*opts.CellSize + 2*opts.Margin
	height := chunk.Height*opts.CellSize + 2*opts.Margin + headerHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, chunk, width, opts)
	}

	gridTop := opts.Margin + headerHeight
	for y := 0; y < chunk.Height; y++ {
		for x := 0; x < chunk.Width; x++ {
			drawTile(canvas, chunk.At(x, y), opts.Margin+x*opts.CellSize, gridTop+y*opts.CellSize, opts)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders chunk and writes the result to filePath.
func SaveSVGToFile(chunk *floor.ChunkData, filePath string, opts SVGOptions) error {
	data, err := ExportSVG(chunk, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

func drawHeader(canvas *svg.SVG, chunk *floor.ChunkData, width int, opts SVGOptions) {
	y := 20
	if opts.Title != "" {
		canvas.Text(width/2, y, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		y += 22
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("floor=%d seed=%#x biome=%s", chunk.FloorID, chunk.Seed, chunk.Biome)
		canvas.Text(width/2, y, stats,
			"text-anchor:middle;font-size:11px;fill:#a0aec0;font-family:monospace")
	}
}

func drawTile(canvas *svg.SVG, t layout.TileType, x, y int, opts SVGOptions) {
	style := fmt.Sprintf("fill:%s", tileColor(t))
	if opts.ShowGrid {
		style += ";stroke:#2d3748;stroke-width:1"
	}
	canvas.Rect(x, y, opts.CellSize, opts.CellSize, style)

	if glyph := tileGlyph(t); glyph != "" {
		canvas.Text(x+opts.CellSize/2, y+opts.CellSize/2+4, glyph,
			"text-anchor:middle;font-size:12px;font-weight:bold;fill:#1a1a2e")
	}
}

func tileColor(t layout.TileType) string {
	switch t {
	case layout.TileEmpty:
		return "#0d0d17"
	case layout.TileFloor:
		return "#4a5568"
	case layout.TileWall:
		return "#2d3748"
	case layout.TileDoor:
		return "#48bb78"
	case layout.TileStairsUp:
		return "#4299e1"
	case layout.TileStairsDown:
		return "#ed8936"
	case layout.TileChest:
		return "#ffd700"
	case layout.TileTrap:
		return "#f56565"
	case layout.TileSpawner:
		return "#9f7aea"
	case layout.TileShrine:
		return "#ecc94b"
	case layout.TileWindColumn:
		return "#81e6d9"
	case layout.TileVoidPit:
		return "#000000"
	default:
		return "#718096"
	}
}

func tileGlyph(t layout.TileType) string {
	switch t {
	case layout.TileStairsUp:
		return "U"
	case layout.TileStairsDown:
		return "D"
	case layout.TileChest:
		return "C"
	case layout.TileTrap:
		return "!"
	case layout.TileSpawner:
		return "M"
	case layout.TileShrine:
		return "S"
	default:
		return ""
	}
}
