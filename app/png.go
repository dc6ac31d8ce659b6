package app

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/AnkushinDaniil/shgcavity/entity"
)

const (
	pngWidth   = 1200
	pngHeight  = 900
	pngColumns = 2
	pngPadding = 40.0
	gridLines  = 5
)

// palette is the echarts default series palette, so PNG and HTML output use
// the same colors.
var palette = []string{"#5470c6", "#91cc75", "#fac858", "#ee6666"}

// renderPNG draws the plots as a grid of panels. gg has no font unless one is
// loaded, so panels carry no text; the HTML output is the labelled one.
func renderPNG(w io.Writer, sweep entity.SweptModeResult, s float64) error {
	plots, err := plotsFor(sweep)
	if err != nil {
		return err
	}

	dc := gg.NewContext(pngWidth, pngHeight)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	rows := (len(plots) + pngColumns - 1) / pngColumns
	panelW := float64(pngWidth) / pngColumns
	panelH := float64(pngHeight) / float64(rows)
	for i, p := range plots {
		x0 := float64(i%pngColumns)*panelW + pngPadding
		y0 := float64(i/pngColumns)*panelH + pngPadding
		area := rect{x: x0, y: y0, w: panelW - 2*pngPadding, h: panelH - 2*pngPadding}
		if err := drawPanel(dc, area, p, s*mm); err != nil {
			return fmt.Errorf("failed to draw %q: %w", p.title, err)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

type rect struct {
	x, y, w, h float64
}

func drawPanel(dc *gg.Context, area rect, p plot, sMarker float64) error {
	xMin, xMax, yMin, yMax, ok := extent(p.lines)
	if !ok {
		return nil
	}
	if xMax == xMin {
		xMin, xMax = xMin-1, xMax+1
	}
	if yMax == yMin {
		yMin, yMax = yMin-1, yMax+1
	}
	pad := (yMax - yMin) * 0.05
	yMin, yMax = yMin-pad, yMax+pad

	toX := func(x float64) float64 { return area.x + (x-xMin)/(xMax-xMin)*area.w }
	toY := func(y float64) float64 { return area.y + area.h - (y-yMin)/(yMax-yMin)*area.h }

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.SetLineWidth(1)
	for i := 1; i < gridLines; i++ {
		y := area.y + area.h*float64(i)/gridLines
		dc.DrawLine(area.x, y, area.x+area.w, y)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawRectangle(area.x, area.y, area.w, area.h)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetLineWidth(2)
	for i, l := range p.lines {
		if l.Len() == 0 {
			continue
		}
		dc.SetHexColor(palette[i%len(palette)])
		x, y := l.X(), l.Y()
		dc.MoveTo(toX(x[0]), toY(y[0]))
		for j := 1; j < len(x); j++ {
			dc.LineTo(toX(x[j]), toY(y[j]))
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	if sMarker >= xMin && sMarker <= xMax {
		dc.SetRGB(0.8, 0.1, 0.1)
		dc.SetLineWidth(1)
		dc.SetDash(6, 4)
		dc.DrawLine(toX(sMarker), area.y, toX(sMarker), area.y+area.h)
		err := dc.Stroke()
		dc.SetDash()
		if err != nil {
			return err
		}
	}
	return nil
}

// extent returns the joint bounds of lines.
func extent(lines []*entity.Line) (xMin, xMax, yMin, yMax float64, ok bool) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		lxMin, lxMax, lyMin, lyMax, lok := l.Bounds()
		if !lok {
			continue
		}
		ok = true
		xMin, xMax = math.Min(xMin, lxMin), math.Max(xMax, lxMax)
		yMin, yMax = math.Min(yMin, lyMin), math.Max(yMax, lyMax)
	}
	return xMin, xMax, yMin, yMax, ok
}
