package autopas

// SoA is a column-major store of particle attributes, one parallel slice
// per AttributeID. It behaves as a table whose row count is len-viewStart:
// setViewStart lets a caller slice off a prefix cheaply, without copying.
// The Verlet-list SoA traversal does not use it; it passes [iFrom,iTo)
// ranges to SoAFunctorVerlet instead.
//
// Every column is kept the same length; growing or shrinking one grows or
// shrinks all of them together.
type SoA struct {
	ids       []uint64
	posX      []float64
	posY      []float64
	posZ      []float64
	forceX    []float64
	forceY    []float64
	forceZ    []float64
	owned     []bool
	typeID    []uint64
	viewStart int
}

// NewSoA returns an empty SoA buffer.
func NewSoA() *SoA { return &SoA{} }

// Len returns the number of visible rows (length minus the view offset).
func (s *SoA) Len() int { return len(s.ids) - s.viewStart }

// SetViewStart makes row 0 of the visible table alias absolute row k of
// the backing storage. It does not truncate or copy anything.
func (s *SoA) SetViewStart(k int) { s.viewStart = k }

// Push appends one particle's attributes as a new row.
func (s *SoA) Push(p Particle) {
	s.ids = append(s.ids, p.ID)
	s.posX = append(s.posX, p.Position[0])
	s.posY = append(s.posY, p.Position[1])
	s.posZ = append(s.posZ, p.Position[2])
	s.forceX = append(s.forceX, p.Force[0])
	s.forceY = append(s.forceY, p.Force[1])
	s.forceZ = append(s.forceZ, p.Force[2])
	s.owned = append(s.owned, p.Owned)
	s.typeID = append(s.typeID, p.TypeID)
}

// PopBack removes and returns the last visible row.
func (s *SoA) PopBack() Particle {
	n := len(s.ids) - 1
	p := s.particleAt(n)
	s.ids = s.ids[:n]
	s.posX = s.posX[:n]
	s.posY = s.posY[:n]
	s.posZ = s.posZ[:n]
	s.forceX = s.forceX[:n]
	s.forceY = s.forceY[:n]
	s.forceZ = s.forceZ[:n]
	s.owned = s.owned[:n]
	s.typeID = s.typeID[:n]
	return p
}

// Clear empties every column and resets the view offset.
func (s *SoA) Clear() {
	s.ids = s.ids[:0]
	s.posX = s.posX[:0]
	s.posY = s.posY[:0]
	s.posZ = s.posZ[:0]
	s.forceX = s.forceX[:0]
	s.forceY = s.forceY[:0]
	s.forceZ = s.forceZ[:0]
	s.owned = s.owned[:0]
	s.typeID = s.typeID[:0]
	s.viewStart = 0
}

// Swap exchanges two visible rows in place.
func (s *SoA) Swap(i, j int) {
	i, j = i+s.viewStart, j+s.viewStart
	s.ids[i], s.ids[j] = s.ids[j], s.ids[i]
	s.posX[i], s.posX[j] = s.posX[j], s.posX[i]
	s.posY[i], s.posY[j] = s.posY[j], s.posY[i]
	s.posZ[i], s.posZ[j] = s.posZ[j], s.posZ[i]
	s.forceX[i], s.forceX[j] = s.forceX[j], s.forceX[i]
	s.forceY[i], s.forceY[j] = s.forceY[j], s.forceY[i]
	s.forceZ[i], s.forceZ[j] = s.forceZ[j], s.forceZ[i]
	s.owned[i], s.owned[j] = s.owned[j], s.owned[i]
	s.typeID[i], s.typeID[j] = s.typeID[j], s.typeID[i]
}

// Append copies every row of other onto the end of s.
func (s *SoA) Append(other *SoA) {
	n := other.Len()
	for i := 0; i < n; i++ {
		s.Push(other.particleAt(other.viewStart + i))
	}
}

// particleAt reconstructs a Particle from absolute row idx.
func (s *SoA) particleAt(idx int) Particle {
	return Particle{
		ID:       s.ids[idx],
		Position: [3]float64{s.posX[idx], s.posY[idx], s.posZ[idx]},
		Force:    [3]float64{s.forceX[idx], s.forceY[idx], s.forceZ[idx]},
		Owned:    s.owned[idx],
		TypeID:   s.typeID[idx],
	}
}

// At returns visible row i as a Particle. Velocity is not stored in the
// SoA layout (it never participates in a pairwise kernel) and is zero.
func (s *SoA) At(i int) Particle {
	return s.particleAt(i + s.viewStart)
}

// WriteMultiple overwrites the given attributes of visible row i with
// values, positionally paired with attrs.
func (s *SoA) WriteMultiple(i int, attrs []AttributeID, values []float64) {
	idx := i + s.viewStart
	for k, a := range attrs {
		v := values[k]
		switch a {
		case AttrPosX:
			s.posX[idx] = v
		case AttrPosY:
			s.posY[idx] = v
		case AttrPosZ:
			s.posZ[idx] = v
		case AttrForceX:
			s.forceX[idx] = v
		case AttrForceY:
			s.forceY[idx] = v
		case AttrForceZ:
			s.forceZ[idx] = v
		case AttrID:
			s.ids[idx] = uint64(v)
		case AttrTypeID:
			s.typeID[idx] = uint64(v)
		case AttrOwned:
			s.owned[idx] = v != 0
		}
	}
}

// ReadMultiple reads the given attributes of visible row i, positionally
// matching attrs.
func (s *SoA) ReadMultiple(i int, attrs []AttributeID) []float64 {
	idx := i + s.viewStart
	out := make([]float64, len(attrs))
	for k, a := range attrs {
		switch a {
		case AttrPosX:
			out[k] = s.posX[idx]
		case AttrPosY:
			out[k] = s.posY[idx]
		case AttrPosZ:
			out[k] = s.posZ[idx]
		case AttrForceX:
			out[k] = s.forceX[idx]
		case AttrForceY:
			out[k] = s.forceY[idx]
		case AttrForceZ:
			out[k] = s.forceZ[idx]
		case AttrID:
			out[k] = float64(s.ids[idx])
		case AttrTypeID:
			out[k] = float64(s.typeID[idx])
		case AttrOwned:
			if s.owned[idx] {
				out[k] = 1
			}
		}
	}
	return out
}

// Column returns the raw backing slice for one attribute, from the view
// offset onward. Kernels in soa_kernels.go operate directly on these
// slices; callers must not resize the returned slice.
func (s *SoA) Column(a AttributeID) interface{} {
	switch a {
	case AttrID:
		return s.ids[s.viewStart:]
	case AttrPosX:
		return s.posX[s.viewStart:]
	case AttrPosY:
		return s.posY[s.viewStart:]
	case AttrPosZ:
		return s.posZ[s.viewStart:]
	case AttrForceX:
		return s.forceX[s.viewStart:]
	case AttrForceY:
		return s.forceY[s.viewStart:]
	case AttrForceZ:
		return s.forceZ[s.viewStart:]
	case AttrOwned:
		return s.owned[s.viewStart:]
	case AttrTypeID:
		return s.typeID[s.viewStart:]
	default:
		return nil
	}
}

// PosXYZ returns the raw x/y/z position columns, the shape every batch
// kernel in soa_kernels.go consumes.
func (s *SoA) PosXYZ() (x, y, z []float64) {
	return s.posX[s.viewStart:], s.posY[s.viewStart:], s.posZ[s.viewStart:]
}

// ForceXYZ returns the raw x/y/z force columns.
func (s *SoA) ForceXYZ() (x, y, z []float64) {
	return s.forceX[s.viewStart:], s.forceY[s.viewStart:], s.forceZ[s.viewStart:]
}

// FromAoS rebuilds the SoA buffer from a slice of particles, replacing any
// existing content.
func (s *SoA) FromAoS(particles []Particle) {
	s.Clear()
	for _, p := range particles {
		s.Push(p)
	}
}

// ToAoS materializes the visible rows as a slice of particles.
func (s *SoA) ToAoS() []Particle {
	n := s.Len()
	out := make([]Particle, n)
	for i := 0; i < n; i++ {
		out[i] = s.At(i)
	}
	return out
}
