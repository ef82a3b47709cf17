package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"fortuna/home/surface"
	"fortuna/home/surface/surfacetest"
	"fortuna/kernel"
)

func newMenu() (*Menu, *kernel.Shared, *surfacetest.Recorder) {
	var shared kernel.Shared
	rec := surfacetest.New()
	m := New(&shared, rec)
	m.Show()
	rec.Reset()
	return m, &shared, rec
}

func TestHighlightGeometry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sel := rapid.IntRange(First, Last).Draw(t, "sel")
		r := HighlightFor(sel)
		e := EntryFor(sel)
		if r.Left != LabelX {
			t.Fatalf("left = %d", r.Left)
		}
		if int(r.Right-r.Left) != len(e.Label)*6 {
			t.Fatalf("width = %d, label %q", r.Right-r.Left, e.Label)
		}
		if r.Top != e.ScreenY+9 || r.Bottom != r.Top+1 {
			t.Fatalf("rows = %d..%d for y=%d", r.Top, r.Bottom, e.ScreenY)
		}
	})
}

func TestHighlightCanonicalValues(t *testing.T) {
	assert.Equal(t, surface.Rect{Top: 114, Bottom: 115, Left: 60, Right: 198}, HighlightFor(3))
	assert.Equal(t, surface.Rect{Top: 159, Bottom: 160, Left: 60, Right: 120}, HighlightFor(6))
}

func TestClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		deltas := rapid.SliceOf(rapid.IntRange(-8, 8)).Draw(t, "deltas")
		m, _, _ := newMenu()
		want := First
		for _, d := range deltas {
			m.OnEncoderEdge(d)
			want = Clamp(want + d)
			if got := m.Selection(); got != want {
				t.Fatalf("selection = %d, want %d", got, want)
			}
			if got := m.Selection(); got < First || got > Last {
				t.Fatalf("selection %d out of range", got)
			}
		}
	})
}

func TestClampAtBounds(t *testing.T) {
	m, _, _ := newMenu()
	m.OnEncoderEdge(-1)
	assert.Equal(t, 1, m.Selection())
	m.OnEncoderEdge(100)
	assert.Equal(t, 6, m.Selection())
	m.OnEncoderEdge(1)
	assert.Equal(t, 6, m.Selection())
	m.SetSelection(-3)
	assert.Equal(t, 1, m.Selection())
}

func TestNoHighlightBeforeInput(t *testing.T) {
	var shared kernel.Shared
	rec := surfacetest.New()
	m := New(&shared, rec)
	m.Show()

	assert.Equal(t, 1, m.Selection())
	assert.Empty(t, rec.Fills())
	title, ok := rec.TextAt(TitleX, TitleY)
	require.True(t, ok)
	assert.Equal(t, Title, title)
	for _, e := range Entries() {
		got, ok := rec.TextAt(LabelX, e.ScreenY)
		require.True(t, ok, e.Label)
		assert.Equal(t, e.Label, got)
	}
}

func TestFirstInputPaintsHighlight(t *testing.T) {
	m, _, rec := newMenu()
	m.OnEncoderEdge(-1)

	fills := rec.Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, HighlightFor(1), fills[0].Rect)
	assert.Equal(t, surface.Highlight, fills[0].Color)
}

func TestEdgeErasesPreviousHighlight(t *testing.T) {
	m, _, rec := newMenu()
	m.OnEncoderEdge(1)
	rec.Reset()

	m.OnEncoderEdge(1)
	fills := rec.Fills()
	require.Len(t, fills, 2)
	assert.Equal(t, HighlightFor(2), fills[0].Rect)
	assert.Equal(t, surface.Background, fills[0].Color)
	assert.Equal(t, HighlightFor(3), fills[1].Rect)
	assert.Equal(t, surface.Highlight, fills[1].Color)
}

func TestSameSelectionIsIdempotent(t *testing.T) {
	m, _, rec := newMenu()
	m.SetSelection(4)
	rec.Reset()

	m.SetSelection(4)
	m.OnEncoderEdge(0)
	assert.Empty(t, rec.Ops())

	m.SetSelection(6)
	rec.Reset()
	m.OnEncoderEdge(1)
	assert.Empty(t, rec.Ops(), "clamped edge at the top bound repaints nothing")
}

func TestEdgeWhileSuspendedUpdatesStateOnly(t *testing.T) {
	m, shared, rec := newMenu()
	m.SetSelection(2)
	require.True(t, shared.TryAcquireGuard())
	m.EraseHighlight()
	m.Suspend()
	rec.Reset()

	m.OnEncoderEdge(2)
	assert.Equal(t, 4, m.Selection())
	assert.Equal(t, 4, shared.Selection())
	assert.Empty(t, rec.Ops())

	m.Show()
	fills := rec.Fills()
	require.NotEmpty(t, fills)
	last := fills[len(fills)-1]
	assert.Equal(t, HighlightFor(4), last.Rect)
	assert.Equal(t, surface.Highlight, last.Color)
}

func TestEdgeAfterRestoreRepaintsWhileGuarded(t *testing.T) {
	m, shared, rec := newMenu()
	m.SetSelection(2)
	require.True(t, shared.TryAcquireGuard())
	m.EraseHighlight()
	m.Suspend()
	m.Show()
	rec.Reset()

	// The guard is still held through the settle delay.
	m.OnEncoderEdge(1)
	assert.Equal(t, 3, m.Selection())
	fills := rec.Fills()
	require.Len(t, fills, 2)
	assert.Equal(t, HighlightFor(2), fills[0].Rect)
	assert.Equal(t, surface.Background, fills[0].Color)
	assert.Equal(t, HighlightFor(3), fills[1].Rect)
	assert.Equal(t, surface.Highlight, fills[1].Color)
}

func TestEdgeRestoresMenuWhenHiddenDuringGuard(t *testing.T) {
	m, shared, rec := newMenu()
	m.SetSelection(2)
	require.True(t, shared.TryAcquireGuard())
	m.Hide()
	rec.Reset()

	m.OnEncoderEdge(1)
	require.True(t, m.Visible())
	fills := rec.Fills()
	require.NotEmpty(t, fills)
	assert.Equal(t, HighlightFor(3), fills[len(fills)-1].Rect)
}

func TestEdgeRestoresMenuWhenHidden(t *testing.T) {
	m, _, rec := newMenu()
	m.Hide()
	rec.Clear()
	rec.DrawText("Request Completed: 3", 100, 200)
	rec.Reset()

	m.OnEncoderEdge(1)
	require.True(t, m.Visible())
	ops := rec.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, "clear", ops[0].Kind)
	_, stale := rec.TextAt(100, 200)
	assert.False(t, stale)
	assert.Equal(t, HighlightFor(2), rec.Fills()[len(rec.Fills())-1].Rect)
}

func TestEraseHighlightOnce(t *testing.T) {
	m, _, rec := newMenu()
	m.SetSelection(5)
	rec.Reset()

	m.EraseHighlight()
	m.EraseHighlight()
	fills := rec.Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, HighlightFor(5), fills[0].Rect)
	assert.Equal(t, surface.Background, fills[0].Color)
}
