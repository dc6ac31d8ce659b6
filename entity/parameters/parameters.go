package parameters

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/shgcavity/entity/cut"
	"github.com/AnkushinDaniil/shgcavity/entity/format"
)

// Parameters describes a bow-tie SHG cavity. Lengths are in meters and the
// angle in radians. The field names double as the keys of the saved record.
type Parameters struct {
	F          float64 `json:"f" yaml:"f"`                   // focal length of the focusing mirrors
	L          float64 `json:"l" yaml:"l"`                   // crystal length
	V          float64 `json:"v" yaml:"v"`                   // focusing mirror to secondary focus
	S          float64 `json:"s" yaml:"s"`                   // focusing mirror to crystal surface
	Eta        float64 `json:"eta" yaml:"eta"`               // crystal refractive index
	Alpha      float64 `json:"alpha" yaml:"alpha"`           // angle of incidence on the mirrors
	Wavelength float64 `json:"wavelength" yaml:"wavelength"` // fundamental wavelength
	Brewster   bool    `json:"Brewster" yaml:"Brewster"`
}

// Default returns the bundled cavity: 100 mm radius mirrors, a 10 mm crystal
// and a 532 nm fundamental.
func Default() Parameters {
	return Parameters{
		F:          0.05,
		L:          0.01,
		V:          0.1,
		S:          0.07,
		Eta:        1.5,
		Alpha:      0.1745,
		Wavelength: 532e-9,
	}
}

func (p Parameters) Cut() cut.Cut {
	if p.Brewster {
		return cut.Brewster
	}
	return cut.Plane
}

// WithS returns a copy of p with the crystal distance replaced.
func (p Parameters) WithS(s float64) Parameters {
	p.S = s
	return p
}

// Load reads a parameter record saved as JSON or YAML. Keys missing from the
// file keep their Default values.
func Load(path string) (Parameters, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to detect parameter file format: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to read parameter file: %w", err)
	}

	p := Default()
	switch f {
	case format.JSON:
		err = json.Unmarshal(data, &p)
	case format.YAML:
		err = yaml.Unmarshal(data, &p)
	default:
		return Parameters{}, fmt.Errorf("unsupported parameter file format: %s", f)
	}
	if err != nil {
		return Parameters{}, fmt.Errorf("failed to decode parameter file: %w", err)
	}
	return p, nil
}

// Save writes p to path as JSON or YAML depending on the extension.
func Save(path string, p Parameters) error {
	f, err := format.FromPath(path)
	if err != nil {
		return fmt.Errorf("failed to detect parameter file format: %w", err)
	}

	var data []byte
	switch f {
	case format.JSON:
		data, err = json.MarshalIndent(p, "", "  ")
	case format.YAML:
		data, err = yaml.Marshal(p)
	default:
		return fmt.Errorf("unsupported parameter file format: %s", f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write parameter file: %w", err)
	}
	return nil
}
