// Package merge combines the two sides of a version-control conflict on a
// refactoring-history index file into one deduplicated, time-ordered index.
package merge

import (
	"context"
	"io"
	"sort"

	"github.com/samber/lo"

	"github.com/refhist/refhist/pkg/descriptor"
	"github.com/refhist/refhist/pkg/history"
)

// Merger merges refactoring-history index streams on behalf of a
// version-control merge driver. A Merger is stateless; a single value can
// serve any number of sequential merges.
type Merger struct{}

// NewMerger creates a new index merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge reads the target and source index streams, unions their entries
// under record identity (time stamp plus description), sorts them most
// recent first and serializes the result to output in the named charset.
// Each stream may use its own charset.
//
// The ancestor stream is accepted for symmetry with generic three-way merge
// drivers but is deliberately never read: index entries are append-only
// history records, so a record present on either side is always kept and
// ancestor-based conflict detection has nothing to decide.
//
// None of the streams are closed; their lifecycle belongs to the caller. On
// a failure status, whatever bytes were already flushed to output are
// unusable.
func (m *Merger) Merge(
	ctx context.Context,
	output io.Writer, outputCharset string,
	ancestor io.Reader, ancestorCharset string,
	target io.Reader, targetCharset string,
	source io.Reader, sourceCharset string,
) Status {
	sourceProxies, err := history.ReadProxies(source, sourceCharset, history.Filter{})
	if err != nil {
		return errorStatus(CodeMergeFailed, "failed to auto-merge refactoring index: bad source stream", err)
	}
	targetProxies, err := history.ReadProxies(target, targetCharset, history.Filter{})
	if err != nil {
		return errorStatus(CodeMergeFailed, "failed to auto-merge refactoring index: bad target stream", err)
	}

	merged := union(sourceProxies, targetProxies)
	sortNewestFirst(merged)

	if err := history.WriteProxies(output, outputCharset, merged); err != nil {
		return errorStatus(CodeMergeFailed, "failed to auto-merge refactoring index: cannot write output", err)
	}
	return StatusOK
}

func union(source, target []descriptor.Proxy) []descriptor.Proxy {
	set := make(map[descriptor.Key]descriptor.Proxy, len(source)+len(target))
	for _, proxy := range source {
		set[proxy.Key()] = proxy
	}
	for _, proxy := range target {
		set[proxy.Key()] = proxy
	}
	return lo.Values(set)
}

// sortNewestFirst orders proxies by time stamp descending, the presentation
// order of a history index. Ties break on description so output is
// reproducible regardless of map iteration order.
func sortNewestFirst(proxies []descriptor.Proxy) {
	sort.Slice(proxies, func(i, j int) bool {
		if proxies[i].TimeStamp != proxies[j].TimeStamp {
			return proxies[i].TimeStamp > proxies[j].TimeStamp
		}
		return proxies[i].Description < proxies[j].Description
	})
}
