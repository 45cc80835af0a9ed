package mv

const (
	listSlotBits  = 30
	listSlotMask  = 1<<listSlotBits - 1
	listCountBits = 62
)

// List is a packed candidate list of at most two MVs. Slot 0 lives in
// bits 0-29, slot 1 in bits 30-59 and the count in bits 62-63.
type List uint64

// Len returns the number of vectors in the list.
func (l List) Len() int {
	return int(uint64(l) >> listCountBits)
}

// Get returns the vector at index i (0 or 1). Missing entries read as Zero.
func (l List) Get(i int) MV {
	if i >= l.Len() {
		return Zero
	}
	return MV((uint64(l) >> uint(i*listSlotBits)) & listSlotMask)
}

// Set replaces the vector at index i, which must already exist.
func (l List) Set(i int, v MV) List {
	shift := uint(i * listSlotBits)
	cleared := uint64(l) &^ (listSlotMask << shift)
	return List(cleared | (uint64(v)&listSlotMask)<<shift)
}

// Add appends v unconditionally while the list holds fewer than two entries.
func (l List) Add(v MV) List {
	n := l.Len()
	if n >= 2 {
		return l
	}
	body := uint64(l) &^ (3 << listCountBits)
	body |= (uint64(v) & listSlotMask) << uint(n*listSlotBits)
	return List(body | uint64(n+1)<<listCountBits)
}

// AddUniq appends v unless it equals the first entry or the list is full.
// Equality covers both components and the reference slot.
func (l List) AddUniq(v MV) List {
	switch l.Len() {
	case 0:
		return l.Add(v)
	case 1:
		if l.Get(0) == v {
			return l
		}
		return l.Add(v)
	}
	return l
}

// Full reports whether the list holds two entries.
func (l List) Full() bool {
	return l.Len() == 2
}
