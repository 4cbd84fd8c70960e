// Package cartridgetest builds synthetic cartridge images with
// valid headers.
package cartridgetest

// Options describe an image to build.
type Options struct {
	Title   string
	Type    uint8
	CGBFlag uint8
	// Banks is the number of 16kB ROM banks, at least 2.
	Banks int
	// RAMSize is the header RAM size code (0x0149).
	RAMSize uint8
}

// Build returns an image described by o. Each ROM bank is
// filled with its own bank number, except the header area.
func Build(o Options) []byte {
	if o.Banks < 2 {
		o.Banks = 2
	}
	rom := make([]byte, o.Banks*0x4000)
	for bank := 0; bank < o.Banks; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = uint8(bank)
		}
	}
	for i := 0x100; i < 0x150; i++ {
		rom[i] = 0
	}

	copy(rom[0x134:0x143], o.Title)
	rom[0x143] = o.CGBFlag
	rom[0x147] = o.Type
	size := uint8(0)
	for 2<<size < o.Banks {
		size++
	}
	rom[0x148] = size
	rom[0x149] = o.RAMSize
	rom[0x14D] = Checksum(rom)
	return rom
}

// Checksum computes the header checksum of rom.
func Checksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	return x
}
