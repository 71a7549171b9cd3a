package main

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// exportPNG renders the whole graph to a PNG at 1:1 world scale,
// independent of the current viewport.
func exportPNG(g *Graph, filename string, padding float64) error {
	nodes := g.NodesByOrder()
	if len(nodes) == 0 {
		return fmt.Errorf("nothing to export")
	}

	bounds := nodes[0].Rect()
	for _, n := range nodes[1:] {
		bounds = bounds.Union(n.Rect())
	}
	bounds.X -= padding
	bounds.Y -= padding
	bounds.W += 2 * padding
	bounds.H += 2 * padding

	dc := gg.NewContext(int(bounds.W), int(bounds.H))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Connections first so boxes sit on top.
	for _, e := range g.Edges() {
		from := g.Node(e.FromID)
		to := g.Node(e.ToID)
		if from == nil || to == nil {
			continue
		}
		path := RouteBetween(from.Rect(), e.FromSide, to.Rect(), e.ToSide)
		drawEdgePNG(dc, path, bounds)
	}

	for _, n := range nodes {
		drawNodePNG(dc, n, bounds)
	}

	return dc.SavePNG(filename)
}

func drawEdgePNG(dc *gg.Context, path EdgePath, bounds Rect) {
	dc.SetLineWidth(1.5)
	dc.SetColor(color.Black)
	dc.MoveTo(path.From.X-bounds.X, path.From.Y-bounds.Y)
	dc.CubicTo(
		path.Ctrl1.X-bounds.X, path.Ctrl1.Y-bounds.Y,
		path.Ctrl2.X-bounds.X, path.Ctrl2.Y-bounds.Y,
		path.To.X-bounds.X, path.To.Y-bounds.Y,
	)
	dc.Stroke()

	left, right := path.Arrowhead(1.0)
	dc.MoveTo(path.To.X-bounds.X, path.To.Y-bounds.Y)
	dc.LineTo(left.X-bounds.X, left.Y-bounds.Y)
	dc.LineTo(right.X-bounds.X, right.Y-bounds.Y)
	dc.ClosePath()
	dc.Fill()
}

func drawNodePNG(dc *gg.Context, n *Node, bounds Rect) {
	x := n.X - bounds.X
	y := n.Y - bounds.Y

	switch n.Type {
	case NodeNote:
		dc.SetRGB(0.96, 0.94, 0.80)
		dc.DrawRectangle(x, y, n.Width, n.Height)
		dc.Fill()
	case NodeShape:
		dc.SetColor(color.White)
		dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 12)
		dc.Fill()
	default:
		dc.SetColor(color.White)
		dc.DrawRectangle(x, y, n.Width, n.Height)
		dc.Fill()
	}

	dc.SetLineWidth(1.5)
	dc.SetColor(color.Black)
	if n.Type == NodeShape {
		dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 12)
	} else {
		dc.DrawRectangle(x, y, n.Width, n.Height)
	}
	dc.Stroke()

	lines := n.Lines
	if !n.Expanded && len(lines) > 1 {
		lines = lines[:1]
	}
	maxLines := int(n.Height/lineCellH) - 1
	for i, line := range lines {
		if i >= maxLines {
			break
		}
		dc.DrawString(line, x+charCellW, y+lineCellH*float64(i+1))
	}
}
