package history

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refhist/refhist/pkg/descriptor"
)

func TestWriteProxies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteProxies(&buf, "", []descriptor.Proxy{
		{Description: "Extract Bar", TimeStamp: 200},
		{Description: "Rename\tFoo", TimeStamp: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, "200\tExtract Bar\n100\tRename\\tFoo\n", buf.String())
}

func TestWriteProxies_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteProxies(&buf, "", nil))
	assert.Zero(t, buf.Len(), "no header, footer or count is written")
}

func TestWriteProxies_Charset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteProxies(&buf, "ISO-8859-1", []descriptor.Proxy{
		{Description: "Renommer 'café'", TimeStamp: 100},
	})
	require.NoError(t, err)

	// é is a single 0xE9 byte in Latin-1, not the two-byte UTF-8 sequence.
	assert.Contains(t, buf.String(), string(byte(0xE9)))
	assert.NotContains(t, buf.String(), "é")

	proxies, err := ReadProxies(&buf, "ISO-8859-1", Filter{})
	require.NoError(t, err)
	require.Len(t, proxies, 1)
	assert.Equal(t, "Renommer 'café'", proxies[0].Description)
}
