package emulator

// Memory is the byte-addressed backing store behind the cache.
type Memory map[uint64]byte

// Region is a physical memory attribute and protection range.
type Region struct {
	Name      string // Region name, for logging.
	Base      uint64 // First address.
	Size      uint64 // Size in bytes.
	Write     bool   // Write permission for the effective privilege mode.
	Cacheable bool   // Accesses go through the L1 data cache.
	PageFault bool   // The virtual page is not mapped writable.
}

// Contains returns true if addr is inside the region.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Base && addr-r.Base < r.Size
}

// DefaultRegions returns the reset memory map: boot ROM, MMIO and RAM.
func DefaultRegions() []Region {
	return []Region{
		{Name: "rom", Base: 0x0001_0000, Size: 0x0001_0000, Cacheable: true},
		{Name: "mmio", Base: 0x1000_0000, Size: 0x1000_0000, Write: true},
		{Name: "ram", Base: 0x8000_0000, Size: 0x1000_0000, Write: true, Cacheable: true},
	}
}
