package emulator

const (
	LINE_SIZE = 64 // L1 data cache line size in bytes.
)

// LineOf returns the address of the line containing addr.
func LineOf(addr uint64) uint64 {
	return addr &^ (LINE_SIZE - 1)
}

// Line is a single L1 data cache line.
type Line struct {
	Dirty bool
	Data  [LINE_SIZE]byte
}

// Cache is a write-back L1 data cache.
type Cache struct {
	Lines map[uint64]*Line // Valid lines by line address.

	WriteBacks int // Lines written back to memory.
	Discarded  int // Dirty lines dropped without write-back.
}

// Reset invalidates the cache without write-back and clears the counters.
func (c *Cache) Reset() {
	c.Lines = map[uint64]*Line{}
	c.WriteBacks = 0
	c.Discarded = 0
}

// Lookup returns the valid line containing addr.
func (c *Cache) Lookup(addr uint64) (line *Line, ok bool) {
	line, ok = c.Lines[LineOf(addr)]
	return
}

// Fill returns the line containing addr, loading it from mem on a miss.
func (c *Cache) Fill(addr uint64, mem Memory) (line *Line) {
	if c.Lines == nil {
		c.Lines = map[uint64]*Line{}
	}

	base := LineOf(addr)
	line, ok := c.Lines[base]
	if !ok {
		line = &Line{}
		for n := range LINE_SIZE {
			line.Data[n] = mem[base+uint64(n)]
		}
		c.Lines[base] = line
	}

	return
}

// FlushLine writes back and invalidates the line containing addr.
func (c *Cache) FlushLine(addr uint64, mem Memory) {
	base := LineOf(addr)
	line, ok := c.Lines[base]
	if !ok {
		return
	}

	if line.Dirty {
		for n, data := range line.Data {
			mem[base+uint64(n)] = data
		}
		c.WriteBacks++
	}

	delete(c.Lines, base)
}

// DiscardLine invalidates the line containing addr. Dirty data is lost.
func (c *Cache) DiscardLine(addr uint64) {
	base := LineOf(addr)
	line, ok := c.Lines[base]
	if !ok {
		return
	}

	if line.Dirty {
		c.Discarded++
	}

	delete(c.Lines, base)
}

// FlushAll writes back and invalidates every line.
func (c *Cache) FlushAll(mem Memory) {
	for base := range c.Lines {
		c.FlushLine(base, mem)
	}
}

// DiscardAll invalidates every line. Dirty data is lost.
func (c *Cache) DiscardAll() {
	for base := range c.Lines {
		c.DiscardLine(base)
	}
}
