package gvalue

// MaxBesselOrder is the highest order covered by the Bessel table.
const MaxBesselOrder = 10

// besselTable holds Zverev's element values for equally terminated
// Bessel ladders, rows indexed by order.
var besselTable = [MaxBesselOrder + 1][]float64{
	1:  {2.0000},
	2:  {1.5774, 0.4226},
	3:  {1.2550, 0.5528, 0.1922},
	4:  {1.0598, 0.5116, 0.3181, 0.1104},
	5:  {0.9303, 0.4577, 0.3312, 0.2090, 0.0718},
	6:  {0.8377, 0.4116, 0.3158, 0.2364, 0.1480, 0.0505},
	7:  {0.7677, 0.3744, 0.2944, 0.2378, 0.1778, 0.1104, 0.0375},
	8:  {0.7125, 0.3446, 0.2735, 0.2297, 0.1867, 0.1387, 0.0855, 0.0289},
	9:  {0.6678, 0.3203, 0.2547, 0.2184, 0.1859, 0.1506, 0.1111, 0.0682, 0.0230},
	10: {0.6305, 0.3002, 0.2384, 0.2066, 0.1808, 0.1539, 0.1240, 0.0911, 0.0557, 0.0187},
}

// Bessel returns tabulated values for orders 1..MaxBesselOrder. Higher
// orders use the Butterworth values.
func Bessel(order int) ([]float64, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}

	if order > MaxBesselOrder {
		return butterworth(order), nil
	}

	return append([]float64(nil), besselTable[order]...), nil
}
