package app

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/AnkushinDaniil/shgcavity/entity"
)

// csvColumns is the column order of the CSV export, s first.
var csvColumns = []string{
	entity.KeySValues,
	entity.KeyTangentialWaistsCrystal,
	entity.KeyTangentialConfocalParametersCrystal,
	entity.KeyTangentialFocusingParameters,
	entity.KeySagittalWaistsCrystal,
	entity.KeySagittalConfocalParametersCrystal,
	entity.KeySagittalFocusingParameters,
	entity.KeyEllipticitiesCrystal,
	entity.KeyTangentialWaistsCollimated,
	entity.KeyTangentialConfocalParametersCollimated,
	entity.KeySagittalWaistsCollimated,
	entity.KeySagittalConfocalParametersCollimated,
	entity.KeyEllipticitiesCollimated,
}

// writeCSV writes one row per sample in SI units.
func writeCSV(w io.Writer, sweep entity.SweptModeResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}

	columns := sweep.Map()
	row := make([]string, len(csvColumns))
	for i := range sweep.Len() {
		for j, key := range csvColumns {
			row[j] = strconv.FormatFloat(columns[key][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
