package autopas

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/DataDog/zstd"
)

// Snapshot codec: serializes a particle set as one zstd-compressed frame
// per attribute column (id, posX/Y/Z, forceX/Y/Z, owned, typeId), mirroring
// the column-ordered, length-prefixed zstd framing in
// phil-mansfield-guppy/lib/compress/compress.go's WriteCompressedIntsZStd,
// generalized from per-byte-plane int columns to per-attribute float/int
// columns. This is a supplemental, optional feature (§9's "no on-disk
// state" applies to the core itself; a snapshot is an external convenience
// a caller opts into, e.g. checkpointing between simulation runs).
const snapshotMagic uint32 = 0x41504153 // "APAS"

// WriteSnapshot writes the given particles to w as one zstd frame per
// column.
func WriteSnapshot(w io.Writer, particles []Particle) error {
	if err := binary.Write(w, binary.LittleEndian, snapshotMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(len(particles))); err != nil {
		return err
	}

	n := len(particles)
	ids := make([]uint64, n)
	posX := make([]float64, n)
	posY := make([]float64, n)
	posZ := make([]float64, n)
	forceX := make([]float64, n)
	forceY := make([]float64, n)
	forceZ := make([]float64, n)
	owned := make([]byte, n)
	typeID := make([]uint64, n)

	for i, p := range particles {
		ids[i] = p.ID
		posX[i], posY[i], posZ[i] = p.Position[0], p.Position[1], p.Position[2]
		forceX[i], forceY[i], forceZ[i] = p.Force[0], p.Force[1], p.Force[2]
		if p.Owned {
			owned[i] = 1
		}
		typeID[i] = p.TypeID
	}

	if err := writeColumnU64(w, ids); err != nil {
		return err
	}
	for _, col := range [][]float64{posX, posY, posZ, forceX, forceY, forceZ} {
		if err := writeColumnF64(w, col); err != nil {
			return err
		}
	}
	if err := writeColumnBytes(w, owned); err != nil {
		return err
	}
	return writeColumnU64(w, typeID)
}

// ReadSnapshot reads a frame written by WriteSnapshot and reconstructs the
// particle set, restoring each particle's Owned flag from the persisted
// column (velocities are not part of the snapshot and come back zeroed).
func ReadSnapshot(r io.Reader) ([]Particle, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != snapshotMagic {
		return nil, newError(InvalidConfiguration, "snapshot: bad magic %x", magic)
	}
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}

	ids, err := readColumnU64(r, int(n))
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, 6)
	for i := range cols {
		cols[i], err = readColumnF64(r, int(n))
		if err != nil {
			return nil, err
		}
	}
	owned, err := readColumnBytes(r, int(n))
	if err != nil {
		return nil, err
	}
	typeID, err := readColumnU64(r, int(n))
	if err != nil {
		return nil, err
	}

	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			ID:       ids[i],
			Position: [3]float64{cols[0][i], cols[1][i], cols[2][i]},
			Force:    [3]float64{cols[3][i], cols[4][i], cols[5][i]},
			Owned:    owned[i] != 0,
			TypeID:   typeID[i],
		}
	}
	return out, nil
}

func writeColumnU64(w io.Writer, col []uint64) error {
	raw := make([]byte, 8*len(col))
	for i, v := range col {
		binary.LittleEndian.PutUint64(raw[i*8:], v)
	}
	return writeFrame(w, raw)
}

func writeColumnF64(w io.Writer, col []float64) error {
	raw := make([]byte, 8*len(col))
	for i, v := range col {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}
	return writeFrame(w, raw)
}

func writeColumnBytes(w io.Writer, col []byte) error {
	return writeFrame(w, col)
}

func writeFrame(w io.Writer, raw []byte) error {
	compressed, err := zstd.CompressLevel(nil, raw, 3)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(len(compressed))); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var length int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return zstd.Decompress(nil, buf)
}

func readColumnU64(r io.Reader, n int) ([]uint64, error) {
	raw, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return out, nil
}

func readColumnF64(r io.Reader, n int) ([]float64, error) {
	raw, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

func readColumnBytes(r io.Reader, n int) ([]byte, error) {
	raw, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	if len(raw) != n {
		return nil, newError(InvalidConfiguration, "snapshot: owned column has length %d, want %d", len(raw), n)
	}
	return raw, nil
}
