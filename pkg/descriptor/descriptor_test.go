package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		id          string
		description string
		opts        []Option
		wantErr     string
	}{
		{
			name:        "minimal valid",
			id:          "core.rename",
			description: "Rename method 'foo' to 'bar'",
		},
		{
			name:        "all options valid",
			id:          "core.extract",
			description: "Extract method 'baz'",
			opts: []Option{
				Project("acme"),
				Comment("extracted during cleanup"),
				Flags(BreakingChange | StructuralChange),
				TimeStamp(1234567890),
			},
		},
		{
			name:        "empty id",
			id:          "",
			description: "Rename",
			wantErr:     "id must not be empty",
		},
		{
			name:        "empty description",
			id:          "core.rename",
			description: "",
			wantErr:     "description must not be empty",
		},
		{
			name:        "empty project",
			id:          "core.rename",
			description: "Rename",
			opts:        []Option{Project("")},
			wantErr:     "project name must not be empty",
		},
		{
			name:        "negative flags",
			id:          "core.rename",
			description: "Rename",
			opts:        []Option{Flags(-1)},
			wantErr:     "flags must not be negative",
		},
		{
			name:        "time stamp below sentinel",
			id:          "core.rename",
			description: "Rename",
			opts:        []Option{TimeStamp(-2)},
			wantErr:     "invalid time stamp",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := New(tt.id, tt.description, tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, d.ID())
			assert.Equal(t, tt.description, d.Description())
		})
	}
}

func TestNew_ValidationAccumulates(t *testing.T) {
	t.Parallel()

	_, err := New("", "", Flags(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must not be empty")
	assert.Contains(t, err.Error(), "description must not be empty")
	assert.Contains(t, err.Error(), "flags must not be negative")
}

func TestDescriptor_Defaults(t *testing.T) {
	t.Parallel()

	d, err := New("core.rename", "Rename type 'Foo'")
	require.NoError(t, err)

	assert.Equal(t, "", d.Project())
	assert.Equal(t, "", d.Comment())
	assert.Equal(t, None, d.Flags())
	assert.Equal(t, StampUnset, d.TimeStamp())
}

func TestDescriptor_Stamp(t *testing.T) {
	t.Parallel()

	d, err := New("core.rename", "Rename type 'Foo'")
	require.NoError(t, err)

	require.Error(t, d.Stamp(-5), "negative stamps are a contract violation")
	assert.Equal(t, StampUnset, d.TimeStamp())

	require.NoError(t, d.Stamp(1000))
	assert.Equal(t, int64(1000), d.TimeStamp())

	require.Error(t, d.Stamp(2000), "stamps can be set exactly once")
	assert.Equal(t, int64(1000), d.TimeStamp())
}

func TestDescriptor_Stamp_AlreadySetAtConstruction(t *testing.T) {
	t.Parallel()

	d, err := New("core.rename", "Rename type 'Foo'", TimeStamp(100))
	require.NoError(t, err)

	require.Error(t, d.Stamp(200))
	assert.Equal(t, int64(100), d.TimeStamp())
}

func TestDescriptor_Equal(t *testing.T) {
	t.Parallel()

	a, err := New("core.rename", "Rename Foo", TimeStamp(100))
	require.NoError(t, err)

	// Identity deliberately ignores the id: same description and stamp under
	// different ids denote one history record.
	b, err := New("core.move", "Rename Foo", TimeStamp(100), Project("acme"), Flags(MultiChange))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := New("core.rename", "Rename Foo", TimeStamp(101))
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	d, err := New("core.rename", "Rename Bar", TimeStamp(100))
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

func TestDescriptor_Compare(t *testing.T) {
	t.Parallel()

	early, err := New("core.rename", "Rename Foo", TimeStamp(100))
	require.NoError(t, err)
	late, err := New("core.extract", "Extract Bar", TimeStamp(200))
	require.NoError(t, err)
	unstamped, err := New("core.move", "Move Baz")
	require.NoError(t, err)

	assert.Negative(t, early.Compare(late))
	assert.Positive(t, late.Compare(early))
	assert.Zero(t, early.Compare(early))
	assert.Negative(t, unstamped.Compare(early), "unstamped descriptors sort first")
}

func TestDescriptor_Proxy(t *testing.T) {
	t.Parallel()

	d, err := New("core.rename", "Rename Foo", TimeStamp(100), Project("acme"), Comment("c"), Flags(BreakingChange))
	require.NoError(t, err)

	p := d.Proxy()
	assert.Equal(t, Proxy{Project: "acme", Description: "Rename Foo", TimeStamp: 100}, p)
}

func TestDescriptor_String(t *testing.T) {
	t.Parallel()

	d, err := New(IDUnknown, "whatever", TimeStamp(1))
	require.NoError(t, err)
	assert.Equal(t, "descriptor[unknown refactoring]", d.String())

	known, err := New("core.rename", "Rename Foo", TimeStamp(42))
	require.NoError(t, err)
	assert.Contains(t, known.String(), "timeStamp=42")
	assert.Contains(t, known.String(), "id=core.rename")
}
