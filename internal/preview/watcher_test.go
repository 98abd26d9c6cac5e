package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	for _, p := range []string{"/d/.git", "/d/a.md~", "/d/.a.md.swp", "/d/#a.md#", "/d/Thumbs.db"} {
		require.True(t, shouldIgnoreEvent(p), p)
	}
	require.False(t, shouldIgnoreEvent("/d/a.md"))
}

func TestDebouncerCoalesces(t *testing.T) {
	req, trigger := newDebouncer(20 * time.Millisecond)
	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("expected a rebuild request")
	}
	select {
	case <-req:
		t.Fatal("burst should coalesce into one request")
	case <-time.After(60 * time.Millisecond):
	}
}
