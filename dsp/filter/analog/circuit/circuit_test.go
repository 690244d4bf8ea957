package circuit

import "testing"

func TestCounter_PerKindSequences(t *testing.T) {
	c := NewCounter("")

	got := []string{c.Next(Inductor), c.Next(Capacitor), c.Next(Inductor), c.Next(Capacitor), c.Next(Resistor)}
	want := []string{"L1", "C1", "L2", "C2", "R1"}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("id %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCounter_Prefix(t *testing.T) {
	c := NewCounter("S2_")

	comp := c.Add(OpAmp, 0, Active)
	if comp.ID != "S2_U1" || comp.Type != OpAmp || comp.Position != Active {
		t.Fatalf("got %+v", comp)
	}
}

func TestValues(t *testing.T) {
	cs := []Component{{ID: "L1", Value: 1}, {ID: "C1", Value: 2.5}}

	v := Values(cs)
	if len(v) != 2 || v[0] != 1 || v[1] != 2.5 {
		t.Fatalf("got %v", v)
	}
}
