package main

import "math"

type frameOpts struct {
	sel        *Selection
	guides     []SnapGuide
	preview    *EdgePath
	bg         BackgroundStyle
	wireSource int
	wireSide   Side
	showPorts  bool
	scrollRows map[int]int
}

// renderFrame draws the read model into a cell grid: background first,
// then edges, guides and the wiring preview, then nodes back-to-front
// in ascending order-key order.
func renderFrame(g *Graph, vp Viewport, width, height int, opts frameOpts) []string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	drawBackground(grid, vp, opts.bg)

	for _, e := range g.Edges() {
		from := g.Node(e.FromID)
		to := g.Node(e.ToID)
		if from == nil || to == nil {
			// Dangling edges are tolerated here and pruned by the next
			// explicit edge mutation.
			continue
		}
		path := RouteBetween(from.Rect(), e.FromSide, to.Rect(), e.ToSide)
		drawCurve(grid, vp, path, false)
		drawArrow(grid, vp, path)
	}

	for _, gd := range opts.guides {
		drawGuide(grid, vp, gd)
	}
	if opts.preview != nil {
		drawCurve(grid, vp, *opts.preview, true)
	}

	for _, n := range g.NodesByOrder() {
		drawNode(grid, vp, n, opts)
	}

	lines := make([]string, height)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return lines
}

func cellAt(vp Viewport, p Point) (int, int) {
	s := vp.WorldToScreen(p)
	return int(math.Floor(s.X / cellW)), int(math.Floor(s.Y / cellH))
}

func setCell(grid [][]rune, x, y int, ch rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = ch
}

func drawBackground(grid [][]rune, vp Viewport, bg BackgroundStyle) {
	if bg == BgBlank || len(grid) == 0 {
		return
	}
	cols := len(grid[0])
	rows := len(grid)

	step := 100.0
	for step*vp.Zoom < 4*cellH {
		step *= 2
	}

	w0 := vp.ScreenToWorld(Point{0, 0})
	w1 := vp.ScreenToWorld(Point{float64(cols) * cellW, float64(rows) * cellH})
	ch := '·'
	if bg == BgGrid {
		ch = '+'
	}
	for gx := math.Floor(w0.X/step) * step; gx <= w1.X+step; gx += step {
		for gy := math.Floor(w0.Y/step) * step; gy <= w1.Y+step; gy += step {
			x, y := cellAt(vp, Point{gx, gy})
			setCell(grid, x, y, ch)
		}
	}
}

func drawCurve(grid [][]rune, vp Viewport, path EdgePath, dashed bool) {
	x0, y0 := cellAt(vp, path.From)
	x1, y1 := cellAt(vp, path.To)
	steps := abs(x1-x0) + abs(y1-y0) + 16
	if steps > 256 {
		steps = 256
	}

	px, py := x0, y0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := cellAt(vp, path.PointAt(t))
		if x == px && y == py {
			continue
		}
		ch := curveChar(x-px, y-py, dashed)
		setCell(grid, x, y, ch)
		px, py = x, y
	}
}

func curveChar(dx, dy int, dashed bool) rune {
	if dashed {
		return '·'
	}
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func drawArrow(grid [][]rune, vp Viewport, path EdgePath) {
	left, right := path.Arrowhead(vp.Zoom)
	tx, ty := cellAt(vp, path.To)
	lx, ly := cellAt(vp, left)
	rx, ry := cellAt(vp, right)
	plotLine(grid, tx, ty, lx, ly, '·')
	plotLine(grid, tx, ty, rx, ry, '·')

	var tip rune
	switch path.ToSide {
	case SideLeft:
		tip = '▶'
	case SideRight:
		tip = '◀'
	case SideTop:
		tip = '▼'
	default:
		tip = '▲'
	}
	setCell(grid, tx, ty, tip)
}

func drawGuide(grid [][]rune, vp Viewport, gd SnapGuide) {
	if gd.Orientation == GuideVertical {
		x, y0 := cellAt(vp, Point{gd.Pos, gd.Start})
		_, y1 := cellAt(vp, Point{gd.Pos, gd.End})
		for y := y0; y <= y1; y++ {
			setCell(grid, x, y, '┊')
		}
		return
	}
	x0, y := cellAt(vp, Point{gd.Start, gd.Pos})
	x1, _ := cellAt(vp, Point{gd.End, gd.Pos})
	for x := x0; x <= x1; x++ {
		setCell(grid, x, y, '┄')
	}
}

func drawNode(grid [][]rune, vp Viewport, n *Node, opts frameOpts) {
	r := vp.RectToScreen(n.Rect())
	x0 := int(math.Floor(r.X / cellW))
	y0 := int(math.Floor(r.Y / cellH))
	x1 := int(math.Floor((r.X + r.W) / cellW))
	y1 := int(math.Floor((r.Y + r.H) / cellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	selected := opts.sel != nil && opts.sel.Has(n.ID)
	hc, vc := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if selected {
		hc, vc = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}

	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			setCell(grid, x, y, ' ')
		}
	}
	for x := x0 + 1; x < x1; x++ {
		setCell(grid, x, y0, hc)
		setCell(grid, x, y1, hc)
	}
	for y := y0 + 1; y < y1; y++ {
		setCell(grid, x0, y, vc)
		setCell(grid, x1, y, vc)
	}
	setCell(grid, x0, y0, tl)
	setCell(grid, x1, y0, tr)
	setCell(grid, x0, y1, bl)
	setCell(grid, x1, y1, br)

	// Advisory flags pick a marker glyph only; geometry is untouched.
	switch {
	case n.Generating:
		setCell(grid, x0+2, y0, '*')
	case n.Errored:
		setCell(grid, x0+2, y0, '!')
	case n.Unread:
		setCell(grid, x0+2, y0, '•')
	}

	lines := n.Lines
	if !n.Expanded && len(lines) > 1 {
		lines = lines[:1]
	} else if skip := opts.scrollRows[n.ID]; skip > 0 {
		if skip >= len(lines) {
			skip = len(lines) - 1
		}
		lines = lines[skip:]
	}
	maxLines := y1 - y0 - 1
	for i, line := range lines {
		if i >= maxLines {
			break
		}
		y := y0 + 1 + i
		runes := []rune(line)
		for j := 0; j < len(runes) && x0+2+j < x1-1; j++ {
			setCell(grid, x0+2+j, y, runes[j])
		}
	}

	if opts.sel != nil && opts.sel.Primary == n.ID {
		setCell(grid, x1, y1, '+')
	}

	if opts.showPorts || selected || n.ID == opts.wireSource {
		for _, side := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
			x, y := cellAt(vp, side.Anchor(n.Rect()))
			ch := '◦'
			if n.ID == opts.wireSource && side == opts.wireSide {
				ch = '●'
			}
			setCell(grid, x, y, ch)
		}
	}
}

func plotLine(grid [][]rune, x0, y0, x1, y1 int, ch rune) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setCell(grid, x0, y0, ch)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
