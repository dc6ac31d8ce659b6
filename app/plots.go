package app

import (
	"fmt"

	"github.com/AnkushinDaniil/shgcavity/entity"
)

const (
	mm = 1e3
	um = 1e6

	xAxisName = "Distance focusing mirror to crystal surface (mm)"
)

// plot is one panel of the output: a set of curves against s in mm.
type plot struct {
	title string
	yName string
	lines []*entity.Line
}

type curve struct {
	name  string
	y     []float64
	scale float64
}

func plotsFor(sweep entity.SweptModeResult) ([]plot, error) {
	panels := []struct {
		title  string
		yName  string
		curves []curve
	}{
		{
			title: "Crystal focus beam waists",
			yName: "Beam waist (µm)",
			curves: []curve{
				{"tangential", sweep.TangentialWaistsCrystal, um},
				{"sagittal", sweep.SagittalWaistsCrystal, um},
			},
		},
		{
			title:  "Crystal focus ellipticity",
			yName:  "Ellipticity",
			curves: []curve{{"crystal", sweep.EllipticitiesCrystal, 1}},
		},
		{
			title:  "Collimated arm ellipticity",
			yName:  "Ellipticity",
			curves: []curve{{"collimated", sweep.EllipticitiesCollimated, 1}},
		},
		{
			title: "Confocal parameters",
			yName: "Confocal parameter (mm)",
			curves: []curve{
				{"tangential crystal", sweep.TangentialConfocalParametersCrystal, mm},
				{"sagittal crystal", sweep.SagittalConfocalParametersCrystal, mm},
				{"tangential collimated", sweep.TangentialConfocalParametersCollimated, mm},
				{"sagittal collimated", sweep.SagittalConfocalParametersCollimated, mm},
			},
		},
	}

	plots := make([]plot, 0, len(panels))
	for _, panel := range panels {
		p := plot{title: panel.title, yName: panel.yName}
		for _, c := range panel.curves {
			line, err := entity.NewScaledLine(c.name, sweep.SValues, mm, c.y, c.scale)
			if err != nil {
				return nil, fmt.Errorf("failed to create line: %w", err)
			}
			p.lines = append(p.lines, line)
		}
		plots = append(plots, p)
	}
	return plots, nil
}
