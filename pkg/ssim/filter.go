package ssim

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ssimconv/pkg/util"
)

// LegFilter reports whether a flight leg should be kept.
type LegFilter func(leg *FlightLeg) bool

// CompileFilter compiles an expr boolean expression evaluated against the
// fields of each FlightLeg, e.g. `DepartureStation == "AMS" && ServiceType == "J"`.
func CompileFilter(source string) (LegFilter, error) {
	program, err := expr.Compile(source, expr.Env(FlightLeg{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", source, err)
	}

	return programFilter(program), nil
}

func programFilter(program *vm.Program) LegFilter {
	return func(leg *FlightLeg) bool {
		output, err := expr.Run(program, *leg)
		if err != nil {
			log.Debug().Err(err).Str("designator", leg.FlightDesignator).Msg("Filter evaluation failed")
			return false
		}

		keep, _ := output.(bool)
		return keep
	}
}

// applyFilter drops the legs rejected by filter and every segment whose leg
// was not kept. It returns how many legs were removed.
func applyFilter(filter LegFilter, flights *[]*FlightLeg, segments *[]*Segment) int {
	before := len(*flights)
	kept := make(map[*FlightLeg]struct{}, before)

	util.InPlaceFilter(flights, func(leg *FlightLeg) bool {
		if !filter(leg) {
			return false
		}

		kept[leg] = struct{}{}
		return true
	})

	util.InPlaceFilter(segments, func(segment *Segment) bool {
		_, ok := kept[segment.Leg]
		return ok
	})

	return before - len(*flights)
}
