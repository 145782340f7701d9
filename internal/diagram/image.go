package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartData holds the accumulated load of each pipe and its suggested capacity
type ChartData struct {
	Title         string
	XLabel        string
	YLabel        string
	CapacityLabel string // legend of the capacity marks; "capacity" when empty
	Bars          []BarData
}

// ExportLoadChart exports a load chart to an image file (.png, .svg or .pdf)
func ExportLoadChart(data ChartData, filename string) error {
	if len(data.Bars) == 0 {
		return fmt.Errorf("no pipes to chart")
	}

	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = data.XLabel
	p.Y.Label.Text = data.YLabel

	loads := make(plotter.Values, len(data.Bars))
	names := make([]string, len(data.Bars))
	var capacity plotter.XYs
	for i, b := range data.Bars {
		loads[i] = b.Load
		names[i] = b.Label
		if b.Capacity > 0 {
			capacity = append(capacity, plotter.XY{X: float64(i), Y: b.Capacity})
		}
	}

	bars, err := plotter.NewBarChart(loads, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	bars.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(bars)
	p.Legend.Add(data.YLabel, bars)

	if len(capacity) > 0 {
		marks, err := plotter.NewScatter(capacity)
		if err != nil {
			return err
		}
		marks.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		marks.GlyphStyle.Radius = vg.Points(4)
		marks.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(marks)
		label := data.CapacityLabel
		if label == "" {
			label = "capacity"
		}
		p.Legend.Add(label, marks)
	}
	p.NominalX(names...)
	p.Legend.Top = true

	ext := filepath.Ext(filename)
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch ext {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
