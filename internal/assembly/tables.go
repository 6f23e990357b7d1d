package assembly

import (
	"fmt"
	"sort"
)

// explodeGroups assigns each explode-eligible part id to the macro group it
// travels with. Ids absent here stay put.
var explodeGroups = map[string]string{
	"stage1_engines": "stage1_engines",
	"stage2_engines": "stage2_engines",
	"stage3_engine":  "stage3_engine",

	"s_ic_shell":            "s_ic",
	"s_ic_band":             "s_ic",
	"s_ic_fuel_tank":        "s_ic",
	"s_ic_lox_tank":         "s_ic",
	"s_ic_feed_lines":       "s_ic",
	"s_ic_valves":           "s_ic",
	"s_ic_turbopumps":       "s_ic",
	"s_ic_gas_generator":    "s_ic",
	"s_ic_thrust_structure": "s_ic",
	"s_ic_gimbals":          "s_ic",
	"s_ic_copv":             "s_ic",
	"wiring_harness":        "s_ic",

	"interstage_1_2":   "interstage_1_2",
	"stage_separation": "interstage_1_2",

	"s_ii_shell":      "s_ii",
	"s_ii_band":       "s_ii",
	"s_ii_lh2_tank":   "s_ii",
	"s_ii_lox_tank":   "s_ii",
	"s_ii_feed_lines": "s_ii",
	"s_ii_copv":       "s_ii",

	"interstage_2_3": "interstage_2_3",

	"s_ivb_shell":      "s_ivb",
	"s_ivb_band":       "s_ivb",
	"s_ivb_lh2_tank":   "s_ivb",
	"s_ivb_lox_tank":   "s_ivb",
	"s_ivb_feed_lines": "s_ivb",
	"s_ivb_copv":       "s_ivb",

	"instrument_unit":    "instrument_unit",
	"iu_imu":             "instrument_unit",
	"iu_flight_computer": "instrument_unit",
	"iu_power_bus":       "instrument_unit",

	"sla_adapter":    "sla",
	"service_module": "service_module",
	"command_module": "command_module",
	"les":            "les",
}

// groupOffsets is how far each group travels along Y at full explode.
// Engines drop; everything above the first stage rises, further the
// higher it sits.
var groupOffsets = map[string]float32{
	"stage1_engines": -10,
	"stage2_engines": -6,
	"stage3_engine":  -4,

	"s_ic":            0,
	"interstage_1_2":  10,
	"s_ii":            18,
	"interstage_2_3":  28,
	"s_ivb":           38,
	"instrument_unit": 44,
	"sla":             48,
	"service_module":  52,
	"command_module":  58,
	"les":             66,
}

// shellIDs are the exterior skins that fade under cutaway.
var shellIDs = map[string]bool{
	"s_ic_shell":      true,
	"s_ii_shell":      true,
	"s_ivb_shell":     true,
	"interstage_1_2":  true,
	"interstage_2_3":  true,
	"instrument_unit": true,
}

func init() {
	for id, group := range explodeGroups {
		if _, ok := groupOffsets[group]; !ok {
			panic(fmt.Sprintf("assembly: explode id %q maps to group %q with no offset", id, group))
		}
	}
}

// ExplodeOffset returns the full-explode travel for a part id and whether the
// id is explode-eligible.
func ExplodeOffset(id string) (float32, bool) {
	group, ok := explodeGroups[id]
	if !ok {
		return 0, false
	}
	return groupOffsets[group], true
}

// ExplodeGroup returns the macro group a part id travels with.
func ExplodeGroup(id string) (string, bool) {
	group, ok := explodeGroups[id]
	return group, ok
}

// IsShell reports whether a part id is a cutaway shell.
func IsShell(id string) bool {
	return shellIDs[id]
}

// ShellIDs returns the shell id set, sorted.
func ShellIDs() []string {
	ids := make([]string, 0, len(shellIDs))
	for id := range shellIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
