package prototype

import "github.com/cwbudde/filterforge/dsp/filter/analog/poly"

// Evaluate returns H(jw) = Num(jw) / Den(jw) at each angular frequency.
func Evaluate(tf TransferFunction, w []float64) []complex128 {
	num := poly.New(tf.Num...)
	den := poly.New(tf.Den...)

	out := make([]complex128, len(w))
	for i, wi := range w {
		out[i] = num.EvalJW(wi) / den.EvalJW(wi)
	}

	return out
}

// EvaluateAt returns H(s) at an arbitrary complex frequency.
func EvaluateAt(tf TransferFunction, s complex128) complex128 {
	return poly.New(tf.Num...).Eval(s) / poly.New(tf.Den...).Eval(s)
}
