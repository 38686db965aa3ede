package sharelink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharednotes/internal/sharing/domain/sharelink"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		base string
		link sharelink.Link
		want string
	}{
		{
			name: "relative viewer link",
			link: sharelink.Viewer("abc123", "tok"),
			want: "?id=abc123&token=tok&view=viewer",
		},
		{
			name: "absolute base",
			base: "http://localhost:8080/",
			link: sharelink.Viewer("abc123", "tok"),
			want: "http://localhost:8080/?id=abc123&token=tok&view=viewer",
		},
		{
			name: "base with query",
			base: "http://host/app?lang=en",
			link: sharelink.Link{Mode: sharelink.ModeViewer, NoteID: "n1"},
			want: "http://host/app?lang=en&id=n1&view=viewer",
		},
		{
			name: "default mode is editor",
			link: sharelink.Link{NoteID: "n1"},
			want: "?id=n1&view=editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sharelink.Build(tt.base, tt.link))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("viewer link round trip", func(t *testing.T) {
		link := sharelink.Viewer("abc123", "f00dfeed0001")
		got, err := sharelink.Parse(sharelink.Build("", link))
		require.NoError(t, err)
		assert.Equal(t, link, got)
	})

	t.Run("empty query opens editor", func(t *testing.T) {
		got, err := sharelink.Parse("")
		require.NoError(t, err)
		assert.Equal(t, sharelink.ModeEditor, got.Mode)
	})

	t.Run("viewer without token", func(t *testing.T) {
		got, err := sharelink.Parse("view=viewer&id=n1")
		require.NoError(t, err)
		assert.Equal(t, "n1", got.NoteID)
		assert.Empty(t, got.Token)
	})

	t.Run("viewer without id", func(t *testing.T) {
		_, err := sharelink.Parse("?view=viewer&token=x")
		assert.ErrorIs(t, err, sharelink.ErrMissingID)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := sharelink.Parse("view=admin&id=n1")
		assert.ErrorIs(t, err, sharelink.ErrUnknownMode)
	})

	t.Run("malformed query", func(t *testing.T) {
		_, err := sharelink.Parse("id=%zz")
		assert.ErrorIs(t, err, sharelink.ErrParseQuery)
	})
}
