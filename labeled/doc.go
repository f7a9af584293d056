// Package labeled provides dense n-dimensional arrays whose axes carry names,
// coordinate values and unit annotations, plus datasets of such arrays that
// share one coordinate set.
//
// The package knows nothing about where data comes from or how
// it is transformed. [Array] is a plain row-major buffer with axis metadata;
// the materialize and spectral packages build and consume it.
//
// Axis names, component labels, unit strings and attribute keys that are part
// of the interchange contract with downstream consumers are exported as
// constants.
package labeled
