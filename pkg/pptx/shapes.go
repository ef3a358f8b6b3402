package pptx

import (
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/influencerdeck/influencerdeck/pkg/deck"
)

// addTable writes every cell into the first paragraph GoPPT gives it. Column
// widths are not part of the GoPPT table model; [setColumnWidths] applies
// them to the written package.
func addTable(slide *ppt.Slide, t *deck.Table) {
	shape := slide.CreateTableShape(t.Rows(), t.Cols())
	shape.SetOffsetX(int64(t.X))
	shape.SetOffsetY(int64(t.Y))
	shape.SetWidth(int64(t.W))
	shape.SetHeight(int64(t.H))
	for r := 0; r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			runs := t.Cell(r, c).Runs
			if len(runs) == 0 {
				continue
			}
			para := shape.GetCell(r, c).GetParagraphs()[0]
			for _, run := range runs {
				tr := para.CreateTextRun(run.Text)
				applyFont(tr.GetFont(), run.Font)
			}
		}
	}
}

func addChart(slide *ppt.Slide, c *deck.Chart) error {
	values := make(map[string]float64, len(c.Categories))
	for i, cat := range c.Categories {
		if _, dup := values[cat]; dup {
			return fmt.Errorf("chart %q: duplicate category %q", c.Title, cat)
		}
		values[cat] = c.Values[i]
	}
	series := &ppt.ChartSeries{
		Title:      c.SeriesName,
		Categories: c.Categories,
		Values:     values,
	}
	series.ShowPercentage = c.ShowPercent

	shape := slide.CreateChartShape()
	shape.SetOffsetX(int64(c.X))
	shape.SetOffsetY(int64(c.Y))
	shape.SetWidth(int64(c.W))
	shape.SetHeight(int64(c.H))

	switch c.Kind {
	case deck.ChartPie:
		shape.GetPlotArea().SetType(&ppt.PieChart{Series: []*ppt.ChartSeries{series}})
	case deck.ChartColumn:
		shape.GetPlotArea().SetType(&ppt.BarChart{Series: []*ppt.ChartSeries{series}})
	default:
		return fmt.Errorf("chart %q: unsupported kind %v", c.Title, c.Kind)
	}

	title := shape.GetTitle()
	title.Text = c.Title
	title.Visible = c.Title != ""

	legend := shape.GetLegend()
	legend.Visible = c.Legend != deck.LegendNone
	switch c.Legend {
	case deck.LegendBottom:
		legend.Position = ppt.LegendBottom
	case deck.LegendRight:
		legend.Position = ppt.LegendRight
	}
	return nil
}
