package history

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves an IANA charset name. The empty name means the
// stream is already UTF-8 and needs no translation.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown charset %q", name)
	}
	if enc == nil {
		return nil, errors.Errorf("charset %q has no available decoder", name)
	}
	return enc, nil
}

// DecodeReader wraps r so that reads yield UTF-8 regardless of the named
// source charset.
func DecodeReader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// EncodeWriter wraps w so that UTF-8 writes are emitted in the named target
// charset. The caller must not use w directly afterwards; writes through the
// returned writer are flushed per call.
func EncodeWriter(w io.Writer, charset string) (io.Writer, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return w, nil
	}
	return newFlushingWriter(w, enc.NewEncoder()), nil
}

// flushingWriter runs every write through the transformer to completion, so
// the underlying stream never lags a partially transformed write. Index
// entries are written whole per call, which keeps this correct for stateful
// encodings too.
type flushingWriter struct {
	w io.Writer
	t transform.Transformer
}

func newFlushingWriter(w io.Writer, t transform.Transformer) *flushingWriter {
	return &flushingWriter{w: w, t: t}
}

func (fw *flushingWriter) Write(p []byte) (int, error) {
	fw.t.Reset()
	out, _, err := transform.Bytes(fw.t, p)
	if err != nil {
		return 0, errors.Wrap(err, "charset encoding failed")
	}
	if _, err := fw.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
