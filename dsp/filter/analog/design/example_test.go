package design_test

import (
	"fmt"

	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

func ExampleDesign() {
	res, err := design.Design(design.Params{
		FilterType:      design.Passive,
		Characteristics: design.LPF,
		Approximation:   prototype.Butterworth,
		Order:           3,
		CutoffFrequency: 1000,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(res.CircuitTopology, len(res.FrequencyResponse.Frequencies))

	for _, c := range res.Components {
		fmt.Printf("%s %s %.4g\n", c.ID, c.Position, c.Value)
	}
	// Output:
	// ladder-t 500
	// L1 series 0.007958
	// C1 shunt 6.366e-06
	// L2 series 0.007958
}

func ExampleDesign_invalid() {
	_, err := design.Design(design.Params{
		FilterType:      design.Active,
		Characteristics: design.LPF,
		Approximation:   prototype.Butterworth,
		Order:           3,
		CutoffFrequency: 1000,
	})

	fmt.Println(err)
	fmt.Println(design.IsInvalidParams(err))
	// Output:
	// INVALID_PARAMS: Sallen-Key requires an even order (2, 4, 6, 8, 10).
	// true
}
