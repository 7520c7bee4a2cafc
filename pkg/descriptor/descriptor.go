package descriptor

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Flag bits carried by a descriptor. Values above UserChange are reserved
// for client-defined flags.
const (
	None             = 0
	BreakingChange   = 1 << 0
	StructuralChange = 1 << 1
	MultiChange      = 1 << 2
	UserChange       = 1 << 8
)

// IDUnknown is the reserved id reported for refactorings that were performed
// without delivering a descriptor. Records with this id are kept for
// bookkeeping but are never resolvable to a full payload.
const IDUnknown = "refhist.unknown"

// StampUnset is the time stamp sentinel for descriptors that have not been
// committed to history yet.
const StampUnset int64 = -1

// Descriptor captures enough data to identify and replay one completed
// refactoring. Descriptors are immutable after construction, except for the
// set-once time stamp (see Stamp). They are potentially heavy weight; use
// Proxy handles for indexing.
type Descriptor struct {
	id          string
	project     string
	description string
	comment     string
	flags       int
	timeStamp   int64
}

type settings struct {
	project   *string
	comment   string
	flags     int
	timeStamp int64
}

// Option configures optional descriptor fields at construction time.
type Option func(*settings)

// Project associates the descriptor with a named project. An empty name is a
// construction error; omit the option entirely for workspace scope.
func Project(name string) Option {
	return func(s *settings) { s.project = &name }
}

// Comment attaches free-form commentary to the descriptor.
func Comment(text string) Option {
	return func(s *settings) { s.comment = text }
}

// Flags sets the descriptor's flag bits.
func Flags(flags int) Option {
	return func(s *settings) { s.flags = flags }
}

// TimeStamp sets the descriptor's UTC-millisecond time stamp at construction.
func TimeStamp(stamp int64) Option {
	return func(s *settings) { s.timeStamp = stamp }
}

// New validates and constructs a descriptor. id and description must be
// non-empty; a project name, if given, must be non-empty; flags must be
// non-negative; a time stamp, if given, must be non-negative.
func New(id, description string, opts ...Option) (*Descriptor, error) {
	s := settings{timeStamp: StampUnset}
	for _, opt := range opts {
		opt(&s)
	}

	var result *multierror.Error
	if id == "" {
		result = multierror.Append(result, errors.New("descriptor id must not be empty"))
	}
	if description == "" {
		result = multierror.Append(result, errors.New("descriptor description must not be empty"))
	}
	if s.flags < None {
		result = multierror.Append(result, errors.Errorf("descriptor flags must not be negative: %d", s.flags))
	}
	if s.timeStamp < StampUnset {
		result = multierror.Append(result, errors.Errorf("invalid time stamp: %d", s.timeStamp))
	}
	var project string
	if s.project != nil {
		if *s.project == "" {
			result = multierror.Append(result, errors.New("descriptor project name must not be empty"))
		}
		project = *s.project
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Descriptor{
		id:          id,
		project:     project,
		description: description,
		comment:     s.comment,
		flags:       s.flags,
		timeStamp:   s.timeStamp,
	}, nil
}

// ID returns the stable identifier of the refactoring type.
func (d *Descriptor) ID() string { return d.id }

// Project returns the associated project name, or the empty string for a
// workspace-scoped refactoring.
func (d *Descriptor) Project() string { return d.project }

// Description returns the human-readable summary of the refactoring.
func (d *Descriptor) Description() string { return d.description }

// Comment returns the associated comment, or the empty string.
func (d *Descriptor) Comment() string { return d.comment }

// Flags returns the descriptor's flag bits.
func (d *Descriptor) Flags() int { return d.flags }

// TimeStamp returns the UTC-millisecond time stamp, or StampUnset.
func (d *Descriptor) TimeStamp() int64 { return d.timeStamp }

// Stamp sets the time stamp. The stamp can be set exactly once and must be
// non-negative; violating either rule is an error and leaves the descriptor
// unchanged.
func (d *Descriptor) Stamp(stamp int64) error {
	if stamp < 0 {
		return errors.Errorf("invalid time stamp: %d", stamp)
	}
	if d.timeStamp != StampUnset {
		return errors.Errorf("time stamp already set to %d", d.timeStamp)
	}
	d.timeStamp = stamp
	return nil
}

// Equal reports whether two descriptors denote the same history record.
// Identity is time stamp plus description; the id deliberately does not
// participate.
func (d *Descriptor) Equal(other *Descriptor) bool {
	return d.timeStamp == other.timeStamp && d.description == other.description
}

// Compare orders descriptors by time stamp ascending; unstamped descriptors
// sort first.
func (d *Descriptor) Compare(other *Descriptor) int {
	switch {
	case d.timeStamp < other.timeStamp:
		return -1
	case d.timeStamp > other.timeStamp:
		return 1
	}
	return 0
}

// Proxy returns the lightweight index handle for this descriptor.
func (d *Descriptor) Proxy() Proxy {
	return Proxy{
		Project:     d.project,
		Description: d.description,
		TimeStamp:   d.timeStamp,
	}
}

func (d *Descriptor) String() string {
	if d.id == IDUnknown {
		return "descriptor[unknown refactoring]"
	}
	return fmt.Sprintf("descriptor[timeStamp=%d,id=%s,description=%s,project=%s,flags=%d]",
		d.timeStamp, d.id, d.description, d.project, d.flags)
}
