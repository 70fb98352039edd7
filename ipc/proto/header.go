// Package proto implements the wire codec for the overlay daemon's
// binary packet protocol: an 8-byte frame header followed by a
// type-specific payload, all integers little-endian, strings
// length-prefixed by a single byte.
package proto

import (
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderSize is the fixed byte width of a frame header.
const HeaderSize = 8

// Header is the frame envelope every packet carries.
type Header struct {
	Type     byte
	Flags    byte
	Length   uint16
	ObjectID uint32
}

// Encode writes h into the first HeaderSize bytes of buf.
func (h Header) Encode(buf []byte) {
	buf[0] = h.Type
	buf[1] = h.Flags
	binary.LittleEndian.PutUint16(buf[2:4], h.Length)
	binary.LittleEndian.PutUint32(buf[4:8], h.ObjectID)
}

// DecodeHeader reads a Header from the front of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("proto: short frame: %d bytes, need at least %d", len(buf), HeaderSize)
	}
	return Header{
		Type:     buf[0],
		Flags:    buf[1],
		Length:   binary.LittleEndian.Uint16(buf[2:4]),
		ObjectID: binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}

// frameEncoder accumulates a payload after a Header, then finalizes the
// Length field once the full size is known.
type frameEncoder struct {
	typ byte
	id  uint32
	buf []byte
}

func newFrame(typ byte, objectID uint32) *frameEncoder {
	f := &frameEncoder{typ: typ, id: objectID}
	f.buf = make([]byte, HeaderSize)
	return f
}

func (f *frameEncoder) putU8(v uint8)   { f.buf = append(f.buf, v) }
func (f *frameEncoder) putBool(v bool) {
	if v {
		f.putU8(1)
	} else {
		f.putU8(0)
	}
}
func (f *frameEncoder) putU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	f.buf = append(f.buf, b[:]...)
}
func (f *frameEncoder) putU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	f.buf = append(f.buf, b[:]...)
}
func (f *frameEncoder) putU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	f.buf = append(f.buf, b[:]...)
}
func (f *frameEncoder) putF32(v float32) { f.putU32(math.Float32bits(v)) }

func (f *frameEncoder) putStr(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("proto: string %q exceeds 255-byte length prefix", s)
	}
	f.putU8(uint8(len(s)))
	f.buf = append(f.buf, s...)
	return nil
}

func (f *frameEncoder) finish() ([]byte, error) {
	if len(f.buf) > 0xFFFF {
		return nil, fmt.Errorf("proto: frame of %d bytes exceeds u16 length field", len(f.buf))
	}
	h := Header{Type: f.typ, Length: uint16(len(f.buf)), ObjectID: f.id}
	h.Encode(f.buf)
	return f.buf, nil
}

// frameDecoder reads sequentially from a payload, tracking position for
// short-frame detection.
type frameDecoder struct {
	buf []byte
	pos int
}

func newDecoder(buf []byte) *frameDecoder { return &frameDecoder{buf: buf, pos: HeaderSize} }

func (d *frameDecoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return fmt.Errorf("proto: short frame: need %d more bytes at offset %d, have %d total", n, d.pos, len(d.buf))
	}
	return nil
}

func (d *frameDecoder) u8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

func (d *frameDecoder) boolean() (bool, error) {
	v, err := d.u8()
	return v != 0, err
}

func (d *frameDecoder) u16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

func (d *frameDecoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *frameDecoder) u64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *frameDecoder) f32() (float32, error) {
	v, err := d.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (d *frameDecoder) str() (string, error) {
	n, err := d.u8()
	if err != nil {
		return "", err
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

func (d *frameDecoder) remaining() int { return len(d.buf) - d.pos }
