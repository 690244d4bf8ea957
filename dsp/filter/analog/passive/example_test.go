package passive_test

import (
	"fmt"

	"github.com/cwbudde/filterforge/dsp/filter/analog/passive"
)

func ExampleLowpass() {
	cs, topo, err := passive.Lowpass([]float64{1, 2, 1}, 1000, 50)
	if err != nil {
		panic(err)
	}

	fmt.Println(topo)

	for _, c := range cs {
		fmt.Printf("%s %s %.4g\n", c.ID, c.Position, c.Value)
	}
	// Output:
	// ladder-t
	// L1 series 0.007958
	// C1 shunt 6.366e-06
	// L2 series 0.007958
}
