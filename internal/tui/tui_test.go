package tui_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/tui"
)

func newSimulation(t *testing.T) (tcell.SimulationScreen, *tui.ScreenHandler) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	h, err := tui.NewScreenHandler(sim)
	require.NoError(t, err)
	sim.SetSize(40, 3)
	return sim, h
}

func TestKeySource(t *testing.T) {
	sim, h := newSimulation(t)
	src := tui.NewKeySource(sim, h, time.Hour, 0)

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)
	sim.InjectKey(tcell.KeyRune, '€', tcell.ModNone)
	sim.InjectKey(tcell.KeyUp, 0, tcell.ModShift)
	sim.InjectKey(tcell.KeyRune, 0xe4, tcell.ModAlt)

	for _, expected := range []input.Key{
		input.Char('a'),
		input.Ctrl('k'),
		input.KeyUp.WithMod(input.ModShift),
		input.NewKey(input.ModAlt, input.ScanNone, 0xe4),
	} {
		k, err := src.NextKey()
		require.NoError(t, err)
		assert.Equal(t, expected, k, "expected %s, got %s", expected, k)
	}

	h.Fini()
	_, err := src.NextKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeySourceRecovery(t *testing.T) {
	sim, h := newSimulation(t)
	defer h.Fini()
	src := tui.NewKeySource(sim, h, 5*time.Millisecond, 10*time.Millisecond)

	k, err := src.NextKey()
	require.NoError(t, err)
	assert.Equal(t, input.KeyRecovery, k)
}

func TestStatusWriter(t *testing.T) {
	sim, h := newSimulation(t)
	defer h.Fini()
	w := tui.NewStatusWriter(h)

	for i := 1; i <= 4; i++ {
		fmt.Fprintf(w, "line %d\r\n", i)
	}
	fmt.Fprintf(w, "partial")

	cells, width, height := sim.GetContents()
	require.Equal(t, 40, width)
	require.Equal(t, 3, height)

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for _, c := range cells[row*width : (row+1)*width] {
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			}
		}
		rows[row] = strings.TrimSpace(b.String())
	}
	assert.Equal(t, []string{"line 2", "line 3", "line 4"}, rows)
}

func TestDrawTextWrapsWideRunes(t *testing.T) {
	sim, h := newSimulation(t)
	defer h.Fini()

	h.DrawText(0, 0, 3, 2, "a世界bc")
	h.Show()

	cells, width, _ := sim.GetContents()
	at := func(x, y int) rune {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			return 0
		}
		return c.Runes[0]
	}
	assert.Equal(t, 'a', at(0, 0))
	assert.Equal(t, '世', at(1, 0))
	assert.Equal(t, '界', at(0, 1))
	assert.Equal(t, 'b', at(2, 1))
	// 'c' does not fit into the box
	assert.NotEqual(t, 'c', at(0, 2))
}
