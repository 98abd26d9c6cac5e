package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		fm      string
		body    string
		had     bool
		wantErr bool
	}{
		{name: "no frontmatter", in: "# Title\n", body: "# Title\n"},
		{name: "simple", in: "---\ntitle: A\n---\nbody\n", fm: "title: A\n", body: "body\n", had: true},
		{name: "empty", in: "---\n---\nbody\n", fm: "", body: "body\n", had: true},
		{name: "crlf", in: "---\r\ntitle: A\r\n---\r\nbody", fm: "title: A\r\n", body: "body", had: true},
		{name: "closing at eof", in: "---\ntitle: A\n---", fm: "title: A\n", body: "", had: true},
		{name: "unterminated", in: "---\ntitle: A\nbody\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, had, err := Split([]byte(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingClosingDelimiter)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.had, had)
			require.Equal(t, tt.fm, string(fm))
			require.Equal(t, tt.body, string(body))
		})
	}
}

func TestParse(t *testing.T) {
	meta, body, err := Parse([]byte("---\ntitle: Setup\nweight: 3\ndraft: true\n---\n# Hello\n"))
	require.NoError(t, err)
	require.Equal(t, Meta{Title: "Setup", Weight: 3, Draft: true}, meta)
	require.Equal(t, "# Hello\n", string(body))

	_, _, err = Parse([]byte("---\ntitle: [\n---\n"))
	require.Error(t, err)
}
