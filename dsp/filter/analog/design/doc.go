// Package design turns filter design parameters into a transfer function, a
// sampled frequency response and a synthesized circuit.
//
// [Design] is the single entry point. It validates [Params] before any
// numeric work, then builds the analog prototype (dsp/filter/analog/prototype),
// samples its response (dsp/filter/analog/response) and realizes it either as
// an LC ladder from normalized element values (dsp/filter/analog/gvalue,
// dsp/filter/analog/passive) or as cascaded op-amp stages
// (dsp/filter/analog/active). Allpass designs skip the prototype and use a
// closed-form cascade realized as a lattice.
//
// Every failure is reported as an [*Error] with code [InvalidParams] or
// [CalculationError]; a result is never partially filled. Design keeps no
// state and is safe for concurrent use.
package design
