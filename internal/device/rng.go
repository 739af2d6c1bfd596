package device

// Rand draws one uniform byte from the VM-owned PRNG. A splitmix64 step is
// used so that Seed's single-byte input deterministically reproduces the
// same byte stream across runs and across platforms (SPEC §4.D: "the
// precise extension is implementation-defined but must be stable across
// runs given the same seed").
func (d *Device) Rand() byte {
	d.rngState += 0x9E3779B97F4A7C15
	z := d.rngState
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return byte(z)
}

// Seed replaces the PRNG state, extending the given byte deterministically.
func (d *Device) Seed(b byte) {
	d.rngState = uint64(b)*0x0101010101010101 ^ 0x2545F4914F6CDD1D
}
