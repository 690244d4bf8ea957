package core_test

import (
	"fmt"

	"github.com/cwbudde/filterforge/dsp/core"
)

func ExampleApplyDesignOptions() {
	cfg := core.ApplyDesignOptions(
		core.WithResponsePoints(200),
		core.WithReferenceResistance(22e3),
	)

	fmt.Printf("points=%d rref=%.0f floor=%g\n", cfg.ResponsePoints, cfg.ReferenceResistance, cfg.MagnitudeFloor)

	// Output:
	// points=200 rref=22000 floor=1e-30
}

func ExampleMagnitudeToDB() {
	fmt.Printf("%.1f %.1f\n", core.MagnitudeToDB(0.5, 1e-30), core.MagnitudeToDB(0, 1e-30))

	// Output:
	// -6.0 -600.0
}
