package descriptor

// Proxy is a lightweight handle to a history record, carrying only what the
// index format persists. Proxies share the descriptor's identity semantics:
// two proxies are the same record iff their time stamps and descriptions
// match. Project is carried for presentation and filtering but does not
// participate in identity.
type Proxy struct {
	Project     string
	Description string
	TimeStamp   int64
}

// Key is the identity of a history record, suitable for use as a map key
// when deduplicating proxies.
type Key struct {
	TimeStamp   int64
	Description string
}

// Key returns the proxy's identity.
func (p Proxy) Key() Key {
	return Key{TimeStamp: p.TimeStamp, Description: p.Description}
}

// Equal reports whether two proxies denote the same history record.
func (p Proxy) Equal(other Proxy) bool {
	return p.TimeStamp == other.TimeStamp && p.Description == other.Description
}

// Compare orders proxies by time stamp ascending; unstamped proxies sort
// first.
func (p Proxy) Compare(other Proxy) int {
	switch {
	case p.TimeStamp < other.TimeStamp:
		return -1
	case p.TimeStamp > other.TimeStamp:
		return 1
	}
	return 0
}
