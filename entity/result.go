package entity

// Keys of the flat result mapping of a single solution.
const (
	KeyTangentialWaistCrystal                = "tangential waist crystal"
	KeyTangentialConfocalParameterCrystal    = "tangential confocal parameter crystal"
	KeyTangentialFocusingParameter           = "tangential focusing parameter"
	KeySagittalWaistCrystal                  = "sagittal waist crystal"
	KeySagittalConfocalParameterCrystal      = "sagittal confocal parameter crystal"
	KeySagittalFocusingParameter             = "sagittal focusing parameter"
	KeyEllipticityCrystal                    = "ellipticity crystal"
	KeyTangentialWaistCollimated             = "tangential waist collimated"
	KeyTangentialConfocalParameterCollimated = "tangential confocal parameter collimated"
	KeySagittalWaistCollimated               = "sagittal waist collimated"
	KeySagittalConfocalParameterCollimated   = "sagittal confocal parameter collimated"
	KeyEllipticityCollimated                 = "ellipticity collimated"
)

// Keys of the flat result mapping of a sweep.
const (
	KeyTangentialWaistsCrystal                = "tangential waists crystal"
	KeyTangentialConfocalParametersCrystal    = "tangential confocal parameters crystal"
	KeyTangentialFocusingParameters           = "tangential focusing parameters"
	KeySagittalWaistsCrystal                  = "sagittal waists crystal"
	KeySagittalConfocalParametersCrystal      = "sagittal confocal parameters crystal"
	KeySagittalFocusingParameters             = "sagittal focusing parameters"
	KeyEllipticitiesCrystal                   = "ellipticities crystal"
	KeyTangentialWaistsCollimated             = "tangential waists collimated"
	KeyTangentialConfocalParametersCollimated = "tangential confocal parameters collimated"
	KeySagittalWaistsCollimated               = "sagittal waists collimated"
	KeySagittalConfocalParametersCollimated   = "sagittal confocal parameters collimated"
	KeyEllipticitiesCollimated                = "ellipticities collimated"
	KeySValues                                = "s values"
)

// ModeResult holds the cavity eigenmode at the crystal center and at the
// secondary focus. Waists and confocal parameters are in meters.
type ModeResult struct {
	TangentialWaistCrystal                float64 `json:"tangential waist crystal" yaml:"tangential waist crystal"`
	TangentialConfocalParameterCrystal    float64 `json:"tangential confocal parameter crystal" yaml:"tangential confocal parameter crystal"`
	TangentialFocusingParameter           float64 `json:"tangential focusing parameter" yaml:"tangential focusing parameter"`
	SagittalWaistCrystal                  float64 `json:"sagittal waist crystal" yaml:"sagittal waist crystal"`
	SagittalConfocalParameterCrystal      float64 `json:"sagittal confocal parameter crystal" yaml:"sagittal confocal parameter crystal"`
	SagittalFocusingParameter             float64 `json:"sagittal focusing parameter" yaml:"sagittal focusing parameter"`
	EllipticityCrystal                    float64 `json:"ellipticity crystal" yaml:"ellipticity crystal"`
	TangentialWaistCollimated             float64 `json:"tangential waist collimated" yaml:"tangential waist collimated"`
	TangentialConfocalParameterCollimated float64 `json:"tangential confocal parameter collimated" yaml:"tangential confocal parameter collimated"`
	SagittalWaistCollimated               float64 `json:"sagittal waist collimated" yaml:"sagittal waist collimated"`
	SagittalConfocalParameterCollimated   float64 `json:"sagittal confocal parameter collimated" yaml:"sagittal confocal parameter collimated"`
	EllipticityCollimated                 float64 `json:"ellipticity collimated" yaml:"ellipticity collimated"`
}

func (r ModeResult) Map() map[string]float64 {
	return map[string]float64{
		KeyTangentialWaistCrystal:                r.TangentialWaistCrystal,
		KeyTangentialConfocalParameterCrystal:    r.TangentialConfocalParameterCrystal,
		KeyTangentialFocusingParameter:           r.TangentialFocusingParameter,
		KeySagittalWaistCrystal:                  r.SagittalWaistCrystal,
		KeySagittalConfocalParameterCrystal:      r.SagittalConfocalParameterCrystal,
		KeySagittalFocusingParameter:             r.SagittalFocusingParameter,
		KeyEllipticityCrystal:                    r.EllipticityCrystal,
		KeyTangentialWaistCollimated:             r.TangentialWaistCollimated,
		KeyTangentialConfocalParameterCollimated: r.TangentialConfocalParameterCollimated,
		KeySagittalWaistCollimated:               r.SagittalWaistCollimated,
		KeySagittalConfocalParameterCollimated:   r.SagittalConfocalParameterCollimated,
		KeyEllipticityCollimated:                 r.EllipticityCollimated,
	}
}

// SweptModeResult holds one ModeResult per retained s value. All slices are
// index-aligned with SValues.
type SweptModeResult struct {
	TangentialWaistsCrystal                []float64 `json:"tangential waists crystal" yaml:"tangential waists crystal"`
	TangentialConfocalParametersCrystal    []float64 `json:"tangential confocal parameters crystal" yaml:"tangential confocal parameters crystal"`
	TangentialFocusingParameters           []float64 `json:"tangential focusing parameters" yaml:"tangential focusing parameters"`
	SagittalWaistsCrystal                  []float64 `json:"sagittal waists crystal" yaml:"sagittal waists crystal"`
	SagittalConfocalParametersCrystal      []float64 `json:"sagittal confocal parameters crystal" yaml:"sagittal confocal parameters crystal"`
	SagittalFocusingParameters             []float64 `json:"sagittal focusing parameters" yaml:"sagittal focusing parameters"`
	EllipticitiesCrystal                   []float64 `json:"ellipticities crystal" yaml:"ellipticities crystal"`
	TangentialWaistsCollimated             []float64 `json:"tangential waists collimated" yaml:"tangential waists collimated"`
	TangentialConfocalParametersCollimated []float64 `json:"tangential confocal parameters collimated" yaml:"tangential confocal parameters collimated"`
	SagittalWaistsCollimated               []float64 `json:"sagittal waists collimated" yaml:"sagittal waists collimated"`
	SagittalConfocalParametersCollimated   []float64 `json:"sagittal confocal parameters collimated" yaml:"sagittal confocal parameters collimated"`
	EllipticitiesCollimated                []float64 `json:"ellipticities collimated" yaml:"ellipticities collimated"`
	SValues                                []float64 `json:"s values" yaml:"s values"`
}

// NewSweptModeResult returns an empty sweep with room for n samples.
func NewSweptModeResult(n int) SweptModeResult {
	alloc := func() []float64 { return make([]float64, 0, n) }
	return SweptModeResult{
		TangentialWaistsCrystal:                alloc(),
		TangentialConfocalParametersCrystal:    alloc(),
		TangentialFocusingParameters:           alloc(),
		SagittalWaistsCrystal:                  alloc(),
		SagittalConfocalParametersCrystal:      alloc(),
		SagittalFocusingParameters:             alloc(),
		EllipticitiesCrystal:                   alloc(),
		TangentialWaistsCollimated:             alloc(),
		TangentialConfocalParametersCollimated: alloc(),
		SagittalWaistsCollimated:               alloc(),
		SagittalConfocalParametersCollimated:   alloc(),
		EllipticitiesCollimated:                alloc(),
		SValues:                                alloc(),
	}
}

// Append adds the solution m obtained at s to every sequence.
func (r *SweptModeResult) Append(s float64, m ModeResult) {
	r.SValues = append(r.SValues, s)
	r.TangentialWaistsCrystal = append(r.TangentialWaistsCrystal, m.TangentialWaistCrystal)
	r.TangentialConfocalParametersCrystal = append(r.TangentialConfocalParametersCrystal, m.TangentialConfocalParameterCrystal)
	r.TangentialFocusingParameters = append(r.TangentialFocusingParameters, m.TangentialFocusingParameter)
	r.SagittalWaistsCrystal = append(r.SagittalWaistsCrystal, m.SagittalWaistCrystal)
	r.SagittalConfocalParametersCrystal = append(r.SagittalConfocalParametersCrystal, m.SagittalConfocalParameterCrystal)
	r.SagittalFocusingParameters = append(r.SagittalFocusingParameters, m.SagittalFocusingParameter)
	r.EllipticitiesCrystal = append(r.EllipticitiesCrystal, m.EllipticityCrystal)
	r.TangentialWaistsCollimated = append(r.TangentialWaistsCollimated, m.TangentialWaistCollimated)
	r.TangentialConfocalParametersCollimated = append(r.TangentialConfocalParametersCollimated, m.TangentialConfocalParameterCollimated)
	r.SagittalWaistsCollimated = append(r.SagittalWaistsCollimated, m.SagittalWaistCollimated)
	r.SagittalConfocalParametersCollimated = append(r.SagittalConfocalParametersCollimated, m.SagittalConfocalParameterCollimated)
	r.EllipticitiesCollimated = append(r.EllipticitiesCollimated, m.EllipticityCollimated)
}

func (r SweptModeResult) Len() int {
	return len(r.SValues)
}

// At returns the solution of sample i.
func (r SweptModeResult) At(i int) ModeResult {
	return ModeResult{
		TangentialWaistCrystal:                r.TangentialWaistsCrystal[i],
		TangentialConfocalParameterCrystal:    r.TangentialConfocalParametersCrystal[i],
		TangentialFocusingParameter:           r.TangentialFocusingParameters[i],
		SagittalWaistCrystal:                  r.SagittalWaistsCrystal[i],
		SagittalConfocalParameterCrystal:      r.SagittalConfocalParametersCrystal[i],
		SagittalFocusingParameter:             r.SagittalFocusingParameters[i],
		EllipticityCrystal:                    r.EllipticitiesCrystal[i],
		TangentialWaistCollimated:             r.TangentialWaistsCollimated[i],
		TangentialConfocalParameterCollimated: r.TangentialConfocalParametersCollimated[i],
		SagittalWaistCollimated:               r.SagittalWaistsCollimated[i],
		SagittalConfocalParameterCollimated:   r.SagittalConfocalParametersCollimated[i],
		EllipticityCollimated:                 r.EllipticitiesCollimated[i],
	}
}

func (r SweptModeResult) Map() map[string][]float64 {
	return map[string][]float64{
		KeyTangentialWaistsCrystal:                r.TangentialWaistsCrystal,
		KeyTangentialConfocalParametersCrystal:    r.TangentialConfocalParametersCrystal,
		KeyTangentialFocusingParameters:           r.TangentialFocusingParameters,
		KeySagittalWaistsCrystal:                  r.SagittalWaistsCrystal,
		KeySagittalConfocalParametersCrystal:      r.SagittalConfocalParametersCrystal,
		KeySagittalFocusingParameters:             r.SagittalFocusingParameters,
		KeyEllipticitiesCrystal:                   r.EllipticitiesCrystal,
		KeyTangentialWaistsCollimated:             r.TangentialWaistsCollimated,
		KeyTangentialConfocalParametersCollimated: r.TangentialConfocalParametersCollimated,
		KeySagittalWaistsCollimated:               r.SagittalWaistsCollimated,
		KeySagittalConfocalParametersCollimated:   r.SagittalConfocalParametersCollimated,
		KeyEllipticitiesCollimated:                r.EllipticitiesCollimated,
		KeySValues:                                r.SValues,
	}
}
