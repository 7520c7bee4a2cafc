package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refhist/refhist/pkg/descriptor"
)

func TestReadProxies(t *testing.T) {
	t.Parallel()

	input := "100\tRename Foo\n200\tExtract Bar\n50\tMove X\n"

	proxies, err := ReadProxies(strings.NewReader(input), "", Filter{})
	require.NoError(t, err)

	// File order, not time order; the reader does not sort.
	assert.Equal(t, []descriptor.Proxy{
		{Description: "Rename Foo", TimeStamp: 100},
		{Description: "Extract Bar", TimeStamp: 200},
		{Description: "Move X", TimeStamp: 50},
	}, proxies)
}

func TestReadProxies_Empty(t *testing.T) {
	t.Parallel()

	proxies, err := ReadProxies(strings.NewReader(""), "", Filter{})
	require.NoError(t, err)
	assert.Empty(t, proxies)
}

func TestReadProxies_EscapedDescription(t *testing.T) {
	t.Parallel()

	input := "100\tmulti\\nline \\t desc \\\\ done\n"

	proxies, err := ReadProxies(strings.NewReader(input), "", Filter{})
	require.NoError(t, err)
	require.Len(t, proxies, 1)
	assert.Equal(t, "multi\nline \t desc \\ done", proxies[0].Description)
}

func TestReadProxies_TimeWindow(t *testing.T) {
	t.Parallel()

	input := "100\ta\n200\tb\n300\tc\n"

	proxies, err := ReadProxies(strings.NewReader(input), "", Filter{Start: 150, End: 250})
	require.NoError(t, err)
	assert.Equal(t, []descriptor.Proxy{{Description: "b", TimeStamp: 200}}, proxies)

	// A zero End means no upper bound.
	proxies, err = ReadProxies(strings.NewReader(input), "", Filter{Start: 150})
	require.NoError(t, err)
	require.Len(t, proxies, 2)
}

func TestReadProxies_ProjectTagging(t *testing.T) {
	t.Parallel()

	proxies, err := ReadProxies(strings.NewReader("100\ta\n"), "", Filter{Project: "acme"})
	require.NoError(t, err)
	require.Len(t, proxies, 1)
	assert.Equal(t, "acme", proxies[0].Project)
}

func TestReadProxies_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated last entry", input: "100\tRename Foo\n200\tExtract"},
		{name: "missing component delimiter", input: "100 Rename Foo\n"},
		{name: "empty time stamp", input: "\tRename Foo\n"},
		{name: "negative time stamp", input: "-100\tRename Foo\n"},
		{name: "signed time stamp", input: "+100\tRename Foo\n"},
		{name: "non-numeric time stamp", input: "10x0\tRename Foo\n"},
		{name: "bad escape in description", input: "100\tRename\\qFoo\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadProxies(strings.NewReader(tt.input), "", Filter{})
			require.Error(t, err)
		})
	}
}

func TestReadProxies_UnknownCharset(t *testing.T) {
	t.Parallel()

	_, err := ReadProxies(strings.NewReader("100\ta\n"), "no-such-charset", Filter{})
	require.Error(t, err)
}
