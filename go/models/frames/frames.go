// Package frames stores presented framebuffers as a snappy-compressed stream
// behind a fixed struc-packed header.
package frames

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	Magic   = "URFB"
	Version = 1

	Width  = 320
	Height = 200
)

type Header struct {
	Magic   string `struc:"[4]byte"`
	Version uint32
	Width   uint16
	Height  uint16
}

type Frame struct {
	Seq  uint32
	Data []byte
}

type frameHeader struct {
	Seq uint32
	Len uint32
}

type Writer struct {
	w   io.Writer
	zw  *snappy.Writer
	seq uint32

	Header Header
}

func NewWriter(w io.Writer) (*Writer, error) {
	header := Header{
		Magic:   Magic,
		Version: Version,
		Width:   Width,
		Height:  Height,
	}
	if err := struc.Pack(w, &header); err != nil {
		return nil, errors.Wrap(err, "failed to pack header")
	}
	return &Writer{w: w, zw: snappy.NewBufferedWriter(w), Header: header}, nil
}

// WriteFrame appends one frame and returns its sequence number.
func (f *Writer) WriteFrame(data []byte) (uint32, error) {
	seq := f.seq
	hdr := frameHeader{Seq: seq, Len: uint32(len(data))}
	if err := struc.Pack(f.zw, &hdr); err != nil {
		return 0, errors.Wrap(err, "failed to pack frame header")
	}
	if _, err := f.zw.Write(data); err != nil {
		return 0, errors.Wrap(err, "failed to write frame")
	}
	f.seq++
	return seq, nil
}

func (f *Writer) Count() uint32 { return f.seq }

// Close flushes the compressed stream. The underlying writer is closed if it
// is an io.Closer.
func (f *Writer) Close() error {
	if err := f.zw.Close(); err != nil {
		return err
	}
	if c, ok := f.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type Reader struct {
	r  io.Reader
	zr *snappy.Reader

	Header Header
}

func NewReader(r io.Reader) (*Reader, error) {
	f := &Reader{r: r}
	if err := struc.Unpack(r, &f.Header); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if f.Header.Magic != Magic {
		return nil, errors.New("invalid frame file magic")
	}
	if f.Header.Version != Version {
		return nil, errors.Errorf("unsupported frame file version %d", f.Header.Version)
	}
	f.zr = snappy.NewReader(r)
	return f, nil
}

// Next returns the next frame, or io.EOF after the last one.
func (f *Reader) Next() (*Frame, error) {
	var raw [8]byte
	if _, err := io.ReadFull(f.zr, raw[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "failed to read frame header")
	}
	var hdr frameHeader
	if err := struc.Unpack(bytes.NewReader(raw[:]), &hdr); err != nil {
		return nil, errors.Wrap(err, "failed to unpack frame header")
	}
	data := make([]byte, hdr.Len)
	if _, err := io.ReadFull(f.zr, data); err != nil {
		return nil, errors.Wrapf(err, "short frame %d", hdr.Seq)
	}
	return &Frame{Seq: hdr.Seq, Data: data}, nil
}

func (f *Reader) Close() error {
	f.zr.Reset(nil)
	if c, ok := f.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
