package assembly

import "fmt"

// Stage tags a propulsion section. Flow paths and engine sets are grouped
// by stage.
type Stage string

const (
	StageIC  Stage = "S-IC"
	StageII  Stage = "S-II"
	StageIVB Stage = "S-IVB"
)

// Stages returns the propulsion stages bottom to top.
func Stages() []Stage {
	return []Stage{StageIC, StageII, StageIVB}
}

// ParseStage validates a stage tag.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// TankRole distinguishes the two propellants of a stage.
type TankRole int

const (
	Oxidizer TankRole = iota
	Fuel
)

func (r TankRole) String() string {
	switch r {
	case Oxidizer:
		return "oxidizer"
	case Fuel:
		return "fuel"
	default:
		return "unknown"
	}
}
