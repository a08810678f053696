package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	plotfont "gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cognicore/textlens/pkg/textlens/sentiment"
)

// ChartRenderer draws the sentiment charts. Both methods overwrite path.
type ChartRenderer interface {
	RenderBar(scores []float64, path string) error
	RenderPie(d sentiment.Distribution, path string) error
}

// DefaultDPI is the resolution of both charts.
const DefaultDPI = 300

// Chart titles and labels.
const (
	BarTitle      = "情感分析结果（柱状图）"
	BarXLabel     = "句子编号"
	BarYLabel     = "情感得分"
	BarLineLegend = "中性阈值"
	PieTitle      = "情感分布（饼图）"
)

// PieColors are the fixed slice colors, in sentiment.Buckets order.
var PieColors = map[sentiment.Bucket]string{
	sentiment.Positive: "#66c2a5",
	sentiment.Neutral:  "#8da0cb",
	sentiment.Negative: "#fc8d62",
}

// Charts renders the bar chart with gonum/plot and the pie chart with
// go-chart.
type Charts struct {
	// Font is used for all chart text. Nil falls back to the libraries'
	// built-in fonts, which cannot draw Chinese.
	Font   *Font
	DPI    int
	Logger *slog.Logger
}

// NewCharts creates a chart renderer at DefaultDPI.
func NewCharts(font *Font) *Charts {
	return &Charts{Font: font, DPI: DefaultDPI}
}

func (c *Charts) dpi() int {
	if c.DPI <= 0 {
		return DefaultDPI
	}
	return c.DPI
}

func (c *Charts) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// RenderBar draws one bar per sentence, colored by score, with a dashed
// reference line at the neutral midpoint.
func (c *Charts) RenderBar(scores []float64, path string) error {
	p, err := c.barPlot(scores)
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(15*vg.Inch, 6*vg.Inch), vgimg.UseDPI(c.dpi()))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bar chart %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write bar chart %s: %w", path, err)
	}
	return f.Close()
}

func (c *Charts) barPlot(scores []float64) (*plot.Plot, error) {
	p := plot.New()
	c.applyPlotFont(p)
	p.Title.Text = BarTitle
	p.X.Label.Text = BarXLabel
	p.Y.Label.Text = BarYLabel

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(grid)

	cmap := moreland.Kindlmann()
	cmap.SetMin(0)
	cmap.SetMax(1)

	n := len(scores)
	width := vg.Points(24)
	if n > 0 {
		if w := 13 * vg.Inch * 0.8 / vg.Length(n); w < width {
			width = w
		}
	}
	for i, s := range scores {
		bar, err := plotter.NewBarChart(plotter.Values{s}, width)
		if err != nil {
			return nil, fmt.Errorf("bar %d: %w", i, err)
		}
		col, err := cmap.At(s)
		if err != nil {
			return nil, fmt.Errorf("bar %d color: %w", i, err)
		}
		bar.Color = col
		bar.LineStyle.Width = 0
		bar.XMin = float64(i)
		p.Add(bar)
	}

	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: sentiment.NeutralLine},
		{X: float64(n) - 0.5, Y: sentiment.NeutralLine},
	})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(line)
	p.Legend.Add(BarLineLegend, line)
	p.Legend.Top = true

	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

func (c *Charts) applyPlotFont(p *plot.Plot) {
	if c.Font == nil {
		c.logger().Warn("no chart font configured, Chinese labels will not render")
		return
	}
	fnt := c.Font.plotFont()
	p.Title.TextStyle.Font = plotfont.From(fnt, 16)
	p.X.Label.TextStyle.Font = plotfont.From(fnt, 12)
	p.Y.Label.TextStyle.Font = plotfont.From(fnt, 12)
	p.X.Tick.Label.Font = plotfont.From(fnt, 10)
	p.Y.Tick.Label.Font = plotfont.From(fnt, 10)
	p.Legend.TextStyle.Font = plotfont.From(fnt, 11)
}

// RenderPie draws the bucket shares with fixed labels and colors. Empty
// buckets are left out of the drawing.
func (c *Charts) RenderPie(d sentiment.Distribution, path string) error {
	pie := c.pieChart(d)
	if len(pie.Values) == 0 {
		return fmt.Errorf("pie chart: no classified sentences")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pie chart %s: %w", path, err)
	}
	if err := pie.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render pie chart %s: %w", path, err)
	}
	return f.Close()
}

func (c *Charts) pieChart(d sentiment.Distribution) chart.PieChart {
	dpi := float64(c.dpi())
	// 6x6 inches; go-chart sizes in pixels at the given DPI.
	side := int(6 * dpi)

	pie := chart.PieChart{
		Title:      PieTitle,
		TitleStyle: chart.Style{FontSize: 16},
		Width:      side,
		Height:     side,
		DPI:        dpi,
	}
	if c.Font != nil {
		pie.Font = c.Font.tt
	}
	for _, b := range sentiment.Buckets {
		n := d.Count(b)
		if n == 0 {
			continue
		}
		pie.Values = append(pie.Values, chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%s %.1f%%", b.Label(), d.Percent(b)),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(PieColors[b]),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1.5,
				FontSize:    12,
			},
		})
	}
	return pie
}
