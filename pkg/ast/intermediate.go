package ast

// IntermediateStorage is one worker's scratch for partial results: an
// index-addressed array of 8-byte slots, each paired with a null flag.
// Contents are undefined at the start of a row's evaluation and after it
// completes; a slot is only meaningful between its producing operator's write
// and the consuming operators' reads within the same row. Storage is owned
// exclusively by one worker and is never synchronized.
type IntermediateStorage struct {
	bits  []uint64
	nulls []bool
}

// NewIntermediateStorage returns storage with the given number of slots,
// sufficient for plans with NumIntermediates() <= slots.
func NewIntermediateStorage(slots int) *IntermediateStorage {
	return &IntermediateStorage{
		bits:  make([]uint64, slots),
		nulls: make([]bool, slots),
	}
}

// Slots returns the number of slots.
func (s *IntermediateStorage) Slots() int { return len(s.bits) }

// Store writes an 8-byte bit pattern and its null flag into slot.
func (s *IntermediateStorage) Store(slot int, bits uint64, null bool) {
	s.bits[slot] = bits
	s.nulls[slot] = null
}

// Load reads the bit pattern and null flag last stored into slot.
func (s *IntermediateStorage) Load(slot int) (bits uint64, null bool) {
	return s.bits[slot], s.nulls[slot]
}

// A Slab is a contiguous allocation backing the intermediate storage of many
// workers, partitioned so that worker w only touches its own slice. It mirrors
// a launcher-sized shared memory region of workers x slots 8-byte slots.
type Slab struct {
	slots int
	bits  []uint64
	nulls []bool
}

// NewSlab allocates backing storage for the given number of workers, each
// with the given number of slots.
func NewSlab(workers, slots int) *Slab {
	return &Slab{
		slots: slots,
		bits:  make([]uint64, workers*slots),
		nulls: make([]bool, workers*slots),
	}
}

// Worker returns the storage slice owned by worker w.
func (s *Slab) Worker(w int) *IntermediateStorage {
	lo, hi := w*s.slots, (w+1)*s.slots
	return &IntermediateStorage{
		bits:  s.bits[lo:hi:hi],
		nulls: s.nulls[lo:hi:hi],
	}
}
