package material

// Rand reproduces the sequence of glibc's rand() (the TYPE_3 additive
// feedback generator), so procedural patterns are identical on every
// platform. It is not safe for concurrent use.
type Rand struct {
	ring [34]uint32
	pos  int
}

// NewRand seeds a generator the way srand(seed) does
func NewRand(seed int32) *Rand {
	if seed == 0 {
		seed = 1
	}

	r := &Rand{}
	r.ring[0] = uint32(seed)
	for i := 1; i < 31; i++ {
		word := (16807 * int64(int32(r.ring[i-1]))) % 2147483647
		if word < 0 {
			word += 2147483647
		}
		r.ring[i] = uint32(word)
	}
	for i := 31; i < 34; i++ {
		r.ring[i] = r.ring[i-31]
	}

	// glibc discards the first 310 outputs after seeding
	for i := 0; i < 310; i++ {
		r.next()
	}
	return r
}

// next advances r[k] = r[k-31] + r[k-3] over a 34-entry window
func (r *Rand) next() uint32 {
	v := r.ring[(r.pos+3)%34] + r.ring[(r.pos+31)%34]
	r.ring[r.pos] = v
	r.pos = (r.pos + 1) % 34
	return v
}

// Int returns the next value in [0, 2^31)
func (r *Rand) Int() int {
	return int(r.next() >> 1)
}
