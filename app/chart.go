package app

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/shgcavity/entity"
)

const pageTitle = "Bow-tie SHG cavity eigenmode"

func createPage(sweep entity.SweptModeResult, s float64) (*components.Page, error) {
	plots, err := plotsFor(sweep)
	if err != nil {
		return nil, err
	}
	page := components.NewPage()
	page.PageTitle = pageTitle
	for _, p := range plots {
		page.AddCharts(createChart(p, s*mm))
	}
	return page, nil
}

// createChart draws every line of p against s and marks sMarker (in mm) with a
// vertical line.
func createChart(p plot, sMarker float64) *charts.Line {
	startTime := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"time":  time.Since(startTime),
			"title": p.title,
			"lines": len(p.lines),
		}).Debug("Creating chart")
	}()
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "450px",
			PageTitle:       pageTitle,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: p.title,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient:       "horizontal",
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
			Type:         "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Top:  "0%",
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  "cavity",
					Title: "Save as image",
				},
				DataView: &opts.ToolBoxFeatureDataView{
					Show:  opts.Bool(true),
					Title: "Data view",
					Lang:  []string{"data view", "turn off", "refresh"},
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xAxisName,
			Type: "value",
			Min:  "dataMin",
			Max:  "dataMax",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  p.yName,
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	for i, l := range p.lines {
		if i == 0 {
			line.AddSeries(l.Name(), l.Data(),
				charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
					Name:  "s",
					XAxis: sMarker,
				}),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
				}),
			)
			continue
		}
		line.AddSeries(l.Name(), l.Data())
	}
	return line
}
