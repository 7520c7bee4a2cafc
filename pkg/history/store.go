package history

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/refhist/refhist/internal/utils"
	"github.com/refhist/refhist/pkg/descriptor"
)

// File names inside a history directory.
const (
	IndexFileName   = "refactorings.index"
	RecordsFileName = "refactorings.yaml"
)

// Store manages a history directory: the proxy index consumed by merge
// tooling next to the full descriptor payloads. The index is the merge
// surface; the records file is what a nonzero flags filter resolves against.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first append.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// IndexPath returns the location of the store's index file.
func (s *Store) IndexPath() string {
	return filepath.Join(s.root, IndexFileName)
}

type record struct {
	ID          string `yaml:"id"`
	Project     string `yaml:"project,omitempty"`
	Description string `yaml:"description"`
	Comment     string `yaml:"comment,omitempty"`
	Flags       int    `yaml:"flags,omitempty"`
	TimeStamp   int64  `yaml:"timeStamp"`
}

// Append commits a descriptor to history: the full record goes to the
// records file and the proxy line is appended to the index. An unstamped
// descriptor is stamped with the current time first.
func (s *Store) Append(d *descriptor.Descriptor) error {
	if d.TimeStamp() == descriptor.StampUnset {
		if err := d.Stamp(time.Now().UnixMilli()); err != nil {
			return err
		}
	}

	if err := utils.CreateDirectory(s.IndexPath()); err != nil {
		return errors.Wrap(err, "creating history directory")
	}

	prior, err := s.readRecords()
	if err != nil {
		return err
	}
	records := append(prior, record{
		ID:          d.ID(),
		Project:     d.Project(),
		Description: d.Description(),
		Comment:     d.Comment(),
		Flags:       d.Flags(),
		TimeStamp:   d.TimeStamp(),
	})
	if err := s.writeRecords(records); err != nil {
		return err
	}

	if err := s.appendIndex(d.Proxy()); err != nil {
		// Keep the records file and the index in step: a record without
		// its index line would be invisible to merge tooling forever.
		if restoreErr := s.writeRecords(prior); restoreErr != nil {
			err = multierror.Append(err, restoreErr)
		}
		return errors.Wrap(err, "appending to index")
	}
	return nil
}

func (s *Store) appendIndex(proxy descriptor.Proxy) error {
	f, err := os.OpenFile(s.IndexPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "opening index file")
	}
	defer f.Close()

	return WriteProxies(f, "", []descriptor.Proxy{proxy})
}

// Read returns the full history records matching the filter, including its
// flags test, in file order.
func (s *Store) Read(filter Filter) ([]*descriptor.Descriptor, error) {
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	var out []*descriptor.Descriptor
	for _, r := range records {
		if !filter.acceptStamp(r.TimeStamp) || !filter.acceptFlags(r.Flags) {
			continue
		}
		if filter.Project != "" && r.Project != filter.Project {
			continue
		}
		opts := []descriptor.Option{descriptor.Flags(r.Flags), descriptor.TimeStamp(r.TimeStamp)}
		if r.Project != "" {
			opts = append(opts, descriptor.Project(r.Project))
		}
		if r.Comment != "" {
			opts = append(opts, descriptor.Comment(r.Comment))
		}
		d, err := descriptor.New(r.ID, r.Description, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid history record at timeStamp %d", r.TimeStamp)
		}
		out = append(out, d)
	}
	return out, nil
}

// Proxies reads the store's index file. A missing index is an empty history.
func (s *Store) Proxies(filter Filter) ([]descriptor.Proxy, error) {
	f, err := os.Open(s.IndexPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening index file")
	}
	defer f.Close()

	return ReadProxies(f, "", filter)
}

func (s *Store) readRecords() ([]record, error) {
	data, err := os.ReadFile(filepath.Join(s.root, RecordsFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading history records")
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "parsing history records")
	}
	return records, nil
}

func (s *Store) writeRecords(records []record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "serializing history records")
	}
	if err := os.WriteFile(filepath.Join(s.root, RecordsFileName), data, 0o644); err != nil {
		return errors.Wrap(err, "writing history records")
	}
	return nil
}
