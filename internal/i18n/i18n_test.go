package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveHonorsQValues(t *testing.T) {
	t.Parallel()

	n, err := New("en", []string{"en", "ja"})
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{header: "ja;q=0.8, en;q=0.9", want: "en"},
		{header: "ja-JP,en;q=0.5", want: "ja"},
		{header: "fr, ja;q=0.3", want: "ja"},
		{header: "fr", want: "en"},
		{header: "", want: "en"},
		{header: "ja;q=0, en-GB;q=0.1", want: "en"},
		{header: "!!!, ja", want: "ja"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, n.Resolve(tc.header), tc.header)
	}
}

func TestNewValidatesLanguages(t *testing.T) {
	t.Parallel()

	_, err := New("", nil)
	require.Error(t, err)

	_, err = New("en", []string{"not a language"})
	require.Error(t, err)

	n, err := New("EN", []string{" ja ", ""})
	require.NoError(t, err)
	require.Equal(t, "en", n.Fallback())
	require.Equal(t, []string{"en", "ja"}, n.Supported())
	require.True(t, n.IsSupported("JA"))
	require.False(t, n.IsSupported("fr"))
}
