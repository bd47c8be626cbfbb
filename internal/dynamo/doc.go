// Package dynamo holds the domain errors shared by the simulation packages.
//
// Validation failures wrap [ErrInvalidArgument] so callers can test for them
// with errors.Is regardless of which layer produced them:
//
//	if _, err := vec.FromPolar(1, 90, "grad"); errors.Is(err, dynamo.ErrInvalidArgument) {
//		// unknown angle unit
//	}
//
// [SimError] reports a frame whose state stopped being finite.
package dynamo
