// Package oracle is the reference attester slashing checker. It finds every
// conflicting pair in a batch of indexed attestations with an exhaustive
// pairwise scan and derives the set of validators that signed both sides.
//
// The scan is quadratic in the batch size. It exists to validate the output
// of incremental detectors, not to replace them.
package oracle
