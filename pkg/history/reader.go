package history

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/refhist/refhist/pkg/descriptor"
)

// Filter narrows a history read. The zero value accepts everything.
type Filter struct {
	// Project restricts matches to records of the named project; empty
	// accepts any project. Index files carry no project column, so for raw
	// index reads the name instead tags the returned proxies.
	Project string

	// Start and End bound the time window in UTC milliseconds, inclusive.
	// A zero End means no upper bound.
	Start int64
	End   int64

	// Flags is the minimum flag set a record must carry, tested bitwise.
	// Index entries do not persist flag bits, so this only takes effect on
	// reads that resolve full records (see Store.Read).
	Flags int
}

func (f Filter) acceptStamp(stamp int64) bool {
	if stamp < f.Start {
		return false
	}
	if f.End != 0 && stamp > f.End {
		return false
	}
	return true
}

func (f Filter) acceptFlags(flags int) bool {
	return flags&f.Flags == f.Flags
}

// ReadProxies materializes the proxies contained in an encoded index stream,
// in file order. The stream is consumed to EOF but not closed. Any malformed
// entry (truncated line, missing component delimiter, unparsable or negative
// time stamp, bad escape) fails the whole read.
func ReadProxies(r io.Reader, charset string, filter Filter) ([]descriptor.Proxy, error) {
	decoded, err := DecodeReader(r, charset)
	if err != nil {
		return nil, err
	}

	var proxies []descriptor.Proxy
	br := bufio.NewReader(decoded)
	for entry := 1; ; entry++ {
		line, err := br.ReadString(DelimEntry)
		if err == io.EOF {
			if len(line) > 0 {
				return nil, errors.Errorf("index entry %d is truncated: missing entry delimiter", entry)
			}
			return proxies, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading index stream")
		}

		proxy, err := parseEntry(strings.TrimSuffix(line, string(DelimEntry)))
		if err != nil {
			return nil, errors.Wrapf(err, "index entry %d", entry)
		}
		if !filter.acceptStamp(proxy.TimeStamp) {
			continue
		}
		proxy.Project = filter.Project
		proxies = append(proxies, proxy)
	}
}

func parseEntry(entry string) (descriptor.Proxy, error) {
	stamp, escaped, found := strings.Cut(entry, string(DelimComponent))
	if !found {
		return descriptor.Proxy{}, errors.New("missing component delimiter")
	}
	if stamp == "" || !isDecimal(stamp) {
		return descriptor.Proxy{}, errors.Errorf("malformed time stamp %q", stamp)
	}
	ts, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return descriptor.Proxy{}, errors.Wrapf(err, "malformed time stamp %q", stamp)
	}
	description, err := Unescape(escaped)
	if err != nil {
		return descriptor.Proxy{}, err
	}
	return descriptor.Proxy{Description: description, TimeStamp: ts}, nil
}

// isDecimal rejects signs and non-digits up front; valid entries encode
// their stamps unsigned.
func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
