package entity

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/opts"
)

// Line is a named curve y(x) ready for plotting.
type Line struct {
	name string
	x    []float64
	y    []float64
}

func NewLine(name string, x, y []float64) (*Line, error) {
	if name == "" {
		return nil, errors.New("name is empty")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("line %q: %d x values for %d y values", name, len(x), len(y))
	}
	return &Line{name: name, x: x, y: y}, nil
}

// NewScaledLine multiplies x and y by the given factors, e.g. to plot meters
// as millimeters.
func NewScaledLine(name string, x []float64, xScale float64, y []float64, yScale float64) (*Line, error) {
	return NewLine(name, scale(x, xScale), scale(y, yScale))
}

func (l *Line) Name() string {
	return l.name
}

func (l *Line) X() []float64 {
	return l.x
}

func (l *Line) Y() []float64 {
	return l.y
}

func (l *Line) Len() int {
	return len(l.x)
}

// Data returns the points as [x, y] pairs for a chart with a value x axis.
func (l *Line) Data() []opts.LineData {
	data := make([]opts.LineData, len(l.x))
	for i := range l.x {
		data[i] = opts.LineData{Value: []float64{l.x[i], l.y[i]}}
	}
	return data
}

// Bounds returns the extent of the curve. ok is false for an empty line.
func (l *Line) Bounds() (xMin, xMax, yMin, yMax float64, ok bool) {
	if len(l.x) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin, xMax = minMax(l.x)
	yMin, yMax = minMax(l.y)
	return xMin, xMax, yMin, yMax, true
}

func minMax(arr []float64) (min, max float64) {
	min, max = arr[0], arr[0]
	for _, v := range arr[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func scale(values []float64, factor float64) []float64 {
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * factor
	}
	return scaled
}
