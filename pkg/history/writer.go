package history

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/refhist/refhist/pkg/descriptor"
)

// WriteProxies serializes proxies as index entries, in the given order, in
// the named target charset. The writer is not closed; on error, bytes
// already flushed must not be trusted by the caller.
func WriteProxies(w io.Writer, charset string, proxies []descriptor.Proxy) error {
	encoded, err := EncodeWriter(w, charset)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, proxy := range proxies {
		b.Reset()
		b.WriteString(strconv.FormatInt(proxy.TimeStamp, 10))
		b.WriteRune(DelimComponent)
		b.WriteString(Escape(proxy.Description))
		b.WriteRune(DelimEntry)
		if _, err := io.WriteString(encoded, b.String()); err != nil {
			return errors.Wrap(err, "writing index entry")
		}
	}
	return nil
}
