// Package charts draws the per-column plots of a cleaning report as PNG
// images using gonum/plot.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch

	// kdeSamples is the number of points on the density curve.
	kdeSamples = 200
)

// Renderer draws histograms and bar charts. The zero value is not usable;
// use NewRenderer.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a renderer producing 6x4 inch images.
func NewRenderer() *Renderer {
	return &Renderer{Width: DefaultWidth, Height: DefaultHeight}
}

// Histogram draws the distribution of values with a Gaussian kernel density
// curve scaled to the bin counts. An empty column yields empty axes.
func (r *Renderer) Histogram(column string, values []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Distribution of " + column
	p.X.Label.Text = column
	p.Y.Label.Text = "Count"

	if len(values) > 0 {
		hist, err := plotter.NewHist(plotter.Values(values), binCount(len(values)))
		if err != nil {
			return nil, fmt.Errorf("histogram: %w", err)
		}
		hist.FillColor = fillColor
		hist.LineStyle = draw.LineStyle{Color: color.White, Width: vg.Points(0.5)}
		p.Add(hist)

		if curve := kdeCurve(values, hist.Width); curve != nil {
			line, err := plotter.NewLine(curve)
			if err != nil {
				return nil, fmt.Errorf("density curve: %w", err)
			}
			line.LineStyle = draw.LineStyle{Color: curveColor, Width: vg.Points(1.5)}
			p.Add(line)
		}
	}

	return r.encode(p)
}

// BarChart draws horizontal bars, the first label on top.
func (r *Renderer) BarChart(column string, labels []string, counts []int) ([]byte, error) {
	if len(labels) != len(counts) {
		return nil, fmt.Errorf("bar chart: %d labels for %d counts", len(labels), len(counts))
	}
	if len(labels) == 0 {
		return nil, errors.New("bar chart: no categories")
	}

	// Nominal axes count upwards from the bottom, so reverse.
	n := len(labels)
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i := range labels {
		values[n-1-i] = float64(counts[i])
		names[n-1-i] = labels[i]
	}

	p := plot.New()
	p.Title.Text = "Top Categories in " + column
	p.X.Label.Text = "Count"
	p.Y.Label.Text = column

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = fillColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)

	return r.encode(p)
}

func (r *Renderer) encode(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// binCount applies the square-root rule.
func binCount(n int) int {
	bins := int(math.Ceil(math.Sqrt(float64(n))))
	if bins < 1 {
		return 1
	}
	return bins
}

// scottBandwidth returns Scott's rule bandwidth, or 0 when the sample has no
// spread.
func scottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0
	}
	return sd * math.Pow(float64(len(values)), -0.2)
}

// kdeCurve evaluates a Gaussian kernel density estimate over the value range
// extended by three bandwidths, scaled by len(values)*binWidth so it overlays
// the histogram counts. It returns nil when no curve can be drawn.
func kdeCurve(values []float64, binWidth float64) plotter.XYs {
	bw := scottBandwidth(values)
	if bw == 0 || binWidth <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw

	kernels := make([]distuv.Normal, len(values))
	for i, v := range values {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}

	step := (hi - lo) / float64(kdeSamples-1)
	pts := make(plotter.XYs, kdeSamples)
	for i := range pts {
		x := lo + float64(i)*step
		density := 0.0
		for _, k := range kernels {
			density += k.Prob(x)
		}
		pts[i] = plotter.XY{X: x, Y: density * binWidth}
	}
	return pts
}

var (
	fillColor  = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	curveColor = color.RGBA{R: 31, G: 56, B: 100, A: 255}
)
