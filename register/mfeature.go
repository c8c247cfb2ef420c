package register

import (
	"github.com/ezrec/sifive/hart"
)

// Mask is a set of feature-disable bits.
type Mask interface {
	Bits() uint64
}

// ClearFeatures clears the bits of mask in the feature-disable register,
// enabling those features. The register becomes R &^ mask.
//
// A feature is enabled when its bit is zero. On reset every implemented
// bit is one, so every feature starts disabled; bits a core does not
// implement are hardwired to zero. Bits are only meant to go from one to
// zero, which is the only transition this function performs.
func ClearFeatures(h hart.Hart, mask Mask) {
	h.Execute(uint32(INSN_MFEATURE_CLEAR), mask.Bits())
}
