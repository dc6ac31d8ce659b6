package cut

import "fmt"

// Cut is the crystal surface variant.
type Cut uint8

const (
	Plane Cut = iota
	Brewster
)

func UnmarshalText(text string) (Cut, error) {
	switch text {
	case "plane", "p":
		return Plane, nil
	case "brewster", "b":
		return Brewster, nil
	default:
		return 0, fmt.Errorf("invalid cut: %q", text)
	}
}

func (c Cut) String() string {
	switch c {
	case Plane:
		return "plane"
	case Brewster:
		return "brewster"
	default:
		return fmt.Sprintf("Cut(%d)", uint8(c))
	}
}
