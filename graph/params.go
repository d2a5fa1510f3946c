package graph

// Params are the structural parameters pinned alongside an encoded
// graph: the reference window, the reference-chain depth bound, the
// minimum run length worth intervalizing, and the Zeta parameter used
// by any role bound to the Zeta code.
type Params struct {
	WindowSize     int // W
	MaxRefCount    int // R_max
	MinIntervalLen int // L_min
	ZetaK          int // k
}

// DefaultParams mirrors the values used in spec.md's literal scenarios.
func DefaultParams() Params {
	return Params{WindowSize: 3, MaxRefCount: 3, MinIntervalLen: 2, ZetaK: 3}
}
