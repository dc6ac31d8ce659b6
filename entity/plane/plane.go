package plane

import "fmt"

// Plane is a transverse plane of the resonator relative to the plane of
// incidence on the folding mirrors.
type Plane uint8

const (
	Tangential Plane = iota
	Sagittal
)

func UnmarshalText(text string) (Plane, error) {
	switch text {
	case "tangential", "t":
		return Tangential, nil
	case "sagittal", "s":
		return Sagittal, nil
	default:
		return 0, fmt.Errorf("invalid plane: %q", text)
	}
}

func (p Plane) String() string {
	switch p {
	case Tangential:
		return "tangential"
	case Sagittal:
		return "sagittal"
	default:
		return fmt.Sprintf("Plane(%d)", uint8(p))
	}
}
