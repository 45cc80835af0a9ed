// Package dump reads and writes per-block syntax records of decoded VP9
// frames. Dumps of two decoder runs are compared record by record to find
// the first block where decoding diverges.
//
// A dump is an 8-byte header followed by records. The header is the magic
// "VP9BLK", a version byte and a flags byte; with FlagZstd set, the
// records are a single zstd stream.
package dump

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/thesyncim/govp9/internal/mv"
	"github.com/thesyncim/govp9/internal/vp9"
)

const (
	magic   = "VP9BLK"
	version = 1

	// FlagZstd marks a zstd-compressed record stream.
	FlagZstd = 1 << 0
)

// ErrInvalidDump indicates a missing magic, an unknown version or a
// malformed record.
var ErrInvalidDump = errors.New("dump: invalid dump")

const (
	blockSkip = 1 << iota
	blockInter
	blockSegPredicted
	blockResidual
)

// Record is one coded block of one frame.
type Record struct {
	Frame int
	Block vp9.CodedBlock
}

// Writer writes records.
type Writer struct {
	bw  *bufio.Writer
	zw  *zstd.Encoder
	buf []byte
}

// NewWriter writes the dump header to w. With compress set the records
// are zstd-compressed.
func NewWriter(w io.Writer, compress bool) (*Writer, error) {
	flags := byte(0)
	if compress {
		flags |= FlagZstd
	}
	if _, err := w.Write(append([]byte(magic), version, flags)); err != nil {
		return nil, err
	}
	dw := &Writer{}
	if compress {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "dump: zstd writer")
		}
		dw.zw = zw
		w = zw
	}
	dw.bw = bufio.NewWriter(w)
	return dw, nil
}

// WriteFrame writes a record for every block of frame, in tile and
// decode order.
func (dw *Writer) WriteFrame(index int, frame *vp9.Frame) error {
	for _, tile := range frame.Tiles {
		for _, sb := range tile.SuperBlocks {
			for i := range sb.Blocks {
				if err := dw.Write(&Record{Frame: index, Block: sb.Blocks[i]}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Write writes one record.
func (dw *Writer) Write(r *Record) error {
	b := dw.buf[:0]
	mi := r.Block.Mode
	b = binary.AppendUvarint(b, uint64(r.Frame))
	b = binary.AppendUvarint(b, uint64(r.Block.MiRow))
	b = binary.AppendUvarint(b, uint64(r.Block.MiCol))

	flags := byte(0)
	if mi.Skip {
		flags |= blockSkip
	}
	if mi.IsInter() {
		flags |= blockInter
	}
	if mi.SegIDPredicted {
		flags |= blockSegPredicted
	}
	if r.Block.Residual != nil {
		flags |= blockResidual
	}
	b = append(b, flags, byte(mi.BlockSize), mi.SegmentID, byte(mi.TxSize), byte(mi.YMode), byte(mi.UVMode))
	for _, m := range mi.SubModes {
		b = append(b, byte(m))
	}

	if in := mi.Inter; in != nil {
		b = append(b, byte(in.RefFrame[0]), byte(in.RefFrame[1]), byte(in.Filter))
		for _, pair := range in.MV {
			for _, v := range pair {
				b = binary.LittleEndian.AppendUint32(b, uint32(v))
			}
		}
	}

	if res := r.Block.Residual; res != nil {
		for plane, units := range res.Planes {
			b = append(b, byte(res.TxSize[plane]))
			b = binary.AppendUvarint(b, uint64(len(units)))
			for _, u := range units {
				b = binary.AppendUvarint(b, uint64(u.Row))
				b = binary.AppendUvarint(b, uint64(u.Col))
				b = binary.AppendUvarint(b, uint64(u.EOB))
				b = appendCoeffs(b, u.Coeffs)
			}
		}
	}

	dw.buf = b
	_, err := dw.bw.Write(b)
	return err
}

// appendCoeffs writes the nonzero coefficients as position, value pairs.
func appendCoeffs(b []byte, coeffs []int32) []byte {
	n := 0
	for _, c := range coeffs {
		if c != 0 {
			n++
		}
	}
	b = binary.AppendUvarint(b, uint64(n))
	for pos, c := range coeffs {
		if c != 0 {
			b = binary.AppendUvarint(b, uint64(pos))
			b = binary.AppendVarint(b, int64(c))
		}
	}
	return b
}

// Close flushes buffered records and ends the zstd stream. It does not
// close the underlying writer.
func (dw *Writer) Close() error {
	if err := dw.bw.Flush(); err != nil {
		return err
	}
	if dw.zw != nil {
		return dw.zw.Close()
	}
	return nil
}

// Reader reads records.
type Reader struct {
	br    *bufio.Reader
	zr    *zstd.Decoder
	Flags byte
}

// NewReader reads the dump header from r.
func NewReader(r io.Reader) (*Reader, error) {
	hdr := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errors.Wrap(ErrInvalidDump, "header")
	}
	if string(hdr[:len(magic)]) != magic || hdr[len(magic)] != version {
		return nil, ErrInvalidDump
	}
	dr := &Reader{Flags: hdr[len(magic)+1]}
	if dr.Flags&FlagZstd != 0 {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "dump: zstd reader")
		}
		dr.zr = zr
		r = zr
	}
	dr.br = bufio.NewReader(r)
	return dr, nil
}

// Next returns the next record, or io.EOF after the last one.
func (dr *Reader) Next() (*Record, error) {
	frame, err := binary.ReadUvarint(dr.br)
	if err == io.EOF {
		return nil, io.EOF
	}
	rd := &recordDecoder{br: dr.br, err: err}
	rec := &Record{Frame: int(frame)}
	rec.Block.MiRow = int(rd.uvarint())
	rec.Block.MiCol = int(rd.uvarint())

	flags := rd.byte()
	mi := &vp9.ModeInfo{
		BlockSize:      vp9.BlockSize(rd.byte()),
		SegmentID:      rd.byte(),
		Skip:           flags&blockSkip != 0,
		SegIDPredicted: flags&blockSegPredicted != 0,
		TxSize:         vp9.TxSize(rd.byte()),
		YMode:          vp9.PredictionMode(rd.byte()),
		UVMode:         vp9.PredictionMode(rd.byte()),
	}
	for i := range mi.SubModes {
		mi.SubModes[i] = vp9.PredictionMode(rd.byte())
	}
	if flags&blockInter != 0 {
		in := &vp9.InterInfo{}
		in.RefFrame[0] = vp9.RefFrame(int8(rd.byte()))
		in.RefFrame[1] = vp9.RefFrame(int8(rd.byte()))
		in.Filter = vp9.InterpFilter(rd.byte())
		for i := range in.MV {
			for j := range in.MV[i] {
				in.MV[i][j] = mv.MV(rd.uint32())
			}
		}
		mi.Inter = in
	}
	rec.Block.Mode = mi

	if flags&blockResidual != 0 {
		res := &vp9.Residual{}
		for plane := range res.Planes {
			tx := vp9.TxSize(rd.byte())
			res.TxSize[plane] = tx
			n := rd.count(1 << 12)
			for i := 0; i < n && rd.err == nil; i++ {
				u := vp9.TransformUnit{
					Row: int(rd.uvarint()),
					Col: int(rd.uvarint()),
					EOB: int(rd.uvarint()),
				}
				u.Coeffs = rd.coeffs(tx, u.EOB)
				res.Planes[plane] = append(res.Planes[plane], u)
			}
		}
		rec.Block.Residual = res
	}

	if rd.err != nil {
		return nil, errors.Wrapf(ErrInvalidDump, "record after frame %d: %v", frame, rd.err)
	}
	return rec, nil
}

// Close releases the zstd decoder. It does not close the underlying
// reader.
func (dr *Reader) Close() {
	if dr.zr != nil {
		dr.zr.Close()
	}
}

// recordDecoder reads record fields with a sticky error.
type recordDecoder struct {
	br  *bufio.Reader
	err error
}

func (rd *recordDecoder) byte() byte {
	if rd.err != nil {
		return 0
	}
	var c byte
	c, rd.err = rd.br.ReadByte()
	return c
}

func (rd *recordDecoder) uvarint() uint64 {
	if rd.err != nil {
		return 0
	}
	var v uint64
	v, rd.err = binary.ReadUvarint(rd.br)
	return v
}

func (rd *recordDecoder) varint() int64 {
	if rd.err != nil {
		return 0
	}
	var v int64
	v, rd.err = binary.ReadVarint(rd.br)
	return v
}

func (rd *recordDecoder) uint32() uint32 {
	var b [4]byte
	for i := range b {
		b[i] = rd.byte()
	}
	return binary.LittleEndian.Uint32(b[:])
}

// count reads a length and rejects values above limit.
func (rd *recordDecoder) count(limit int) int {
	n := rd.uvarint()
	if n > uint64(limit) && rd.err == nil {
		rd.err = errors.Errorf("count %d above %d", n, limit)
	}
	if rd.err != nil {
		return 0
	}
	return int(n)
}

func (rd *recordDecoder) coeffs(tx vp9.TxSize, eob int) []int32 {
	size := 16 << (2 * min(int(tx), 3))
	n := rd.count(size)
	if eob == 0 && n == 0 {
		return nil
	}
	out := make([]int32, size)
	for i := 0; i < n && rd.err == nil; i++ {
		pos := rd.count(size - 1)
		out[pos] = int32(rd.varint())
	}
	return out
}
