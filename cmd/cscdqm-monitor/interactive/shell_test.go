package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-dqm/cscdqm-go/pkg/config"
	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
	"github.com/csc-dqm/cscdqm-go/pkg/store"
)

func newTestShell(t *testing.T) (*Shell, *monitor.Module, resolve.StaticCrateMap) {
	t.Helper()
	mem := store.NewMemory()
	mod, err := monitor.New(config.Default(), monitor.Options{Store: mem})
	require.NoError(t, err)
	crates := resolve.FullCrateMap(9)
	return New(mod, mem, crates), mod, crates
}

func run(s *Shell, line string) (string, bool) {
	var buf bytes.Buffer
	quit := s.Execute(line, &buf)
	return buf.String(), quit
}

func TestExecuteLabel(t *testing.T) {
	s, _, _ := newTestShell(t)

	out, quit := run(s, "label 1,2,1,17")
	assert.False(t, quit)
	assert.Contains(t, out, "CSC_SidePlus_Station02_Ring01_Chamber17")
	assert.Contains(t, out, "side=1,station=2,ring=1,chamber=17")

	out, _ = run(s, "label side=2, station=3")
	assert.Contains(t, out, "CSC_SideMinus_Station03")

	out, _ = run(s, "label 1,9")
	assert.Contains(t, out, "Error:")

	out, _ = run(s, "label")
	assert.Contains(t, out, "address required")
}

func TestExecuteMaskAndExcluded(t *testing.T) {
	s, mod, _ := newTestShell(t)

	out, _ := run(s, "excluded 2,1,1,5")
	assert.Contains(t, out, "is not masked")

	out, _ = run(s, "mask side=2,station=1")
	assert.Contains(t, out, "Masked side=2,station=1")
	assert.Equal(t, 1, mod.Masks().Len())
	assert.NotContains(t, out, "Note:")

	out, _ = run(s, "x 2,1,1,5")
	assert.Contains(t, out, "CSC_SideMinus_Station01_Ring01_Chamber05 is masked")

	out, _ = run(s, "mask *,*")
	assert.Contains(t, out, "Error:")
	assert.Equal(t, 1, mod.Masks().Len())
}

func TestExecuteResolve(t *testing.T) {
	s, _, crates := newTestShell(t)
	id, ok := crates.Lookup(3, 4)
	require.True(t, ok)

	out, _ := run(s, "resolve 3 4")
	assert.Contains(t, out, resolve.TypeLabel(id.Endcap, id.Station, id.Ring))
	assert.Contains(t, out, id.Address().Label())

	out, _ = run(s, "resolve 99 1")
	assert.Contains(t, out, "unmapped")

	out, _ = run(s, "resolve x 1")
	assert.Contains(t, out, "must be integers")

	out, _ = run(s, "resolve 1")
	assert.Contains(t, out, "Usage")
}

func TestExecuteResolveUsesModuleTypes(t *testing.T) {
	crates := resolve.FullCrateMap(9)
	id, ok := crates.Lookup(1, 1)
	require.True(t, ok)
	label := resolve.TypeLabel(id.Endcap, id.Station, id.Ring)

	mem := store.NewMemory()
	mod, err := monitor.New(config.Default(), monitor.Options{
		Store: mem,
		Types: resolve.TypeTable{label: 42},
	})
	require.NoError(t, err)
	s := New(mod, mem, crates)

	out, _ := run(s, "resolve 1 1")
	assert.Contains(t, out, label+" type 42")

	other, ok := crates.Lookup(9, 9)
	require.True(t, ok)
	if resolve.TypeLabel(other.Endcap, other.Station, other.Ring) != label {
		out, _ = run(s, "resolve 9 9")
		assert.Contains(t, out, "unmapped")
	}
}

func TestExecuteGeometry(t *testing.T) {
	s, _, _ := newTestShell(t)

	out, _ := run(s, "geometry")
	assert.Contains(t, out, "ME1/1: 36 chambers")
	assert.Contains(t, out, "ME2/1: 18 chambers")
	assert.Contains(t, out, "Total: 540 chambers")

	out, _ = run(s, "g 4")
	assert.NotContains(t, out, "ME1/")
	assert.Contains(t, out, "ME4/2")

	out, _ = run(s, "g 7")
	assert.Contains(t, out, "Error:")
}

func TestExecuteStatsAndSummary(t *testing.T) {
	s, mod, crates := newTestShell(t)

	out, _ := run(s, "summary")
	assert.Contains(t, out, "No bins booked yet")

	id, ok := crates.Lookup(1, 1)
	require.True(t, ok)
	require.Equal(t, resolve.ChamberID{Endcap: 1, Station: 1, Ring: 1, Chamber: 1}, id)

	mod.OnRunBegin(7)
	mod.OnEvent(monitor.Event{
		Run: 7, LumiBlock: 1, Number: 1,
		Readouts: []monitor.Readout{
			{DDU: 750, Crate: 1, Slot: 1, Hits: []monitor.Hit{{Layer: 1, Element: 1, Count: 2}}},
			{DDU: 750, Crate: 99, Slot: 1},
		},
	}, crates)
	mod.OnRunEnd(7)

	out, _ = run(s, "stats")
	assert.Contains(t, out, "Events:          1")
	assert.Contains(t, out, "Readouts:        2")
	assert.Contains(t, out, "Unmapped:        1")
	assert.Contains(t, out, "DDUs:            1")
	assert.Contains(t, out, "Bins:")

	out, _ = run(s, "summary")
	assert.Contains(t, out, "reportSummary: 0.0019")
	assert.Contains(t, out, "CSC_SidePlus_Station01")
	assert.Contains(t, out, "0.0093")
	assert.Contains(t, out, "CSC_SideMinus_Station04")

	out, _ = run(s, "mask 1,2")
	assert.Contains(t, out, "Note:")
}

func TestExecuteBins(t *testing.T) {
	s, mod, crates := newTestShell(t)
	mod.OnEvent(monitor.Event{Run: 1, LumiBlock: 1}, crates)

	out, _ := run(s, "bins CSC/EventInfo/report")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "CSC/EventInfo/reportSummary")
	assert.Contains(t, lines, "CSC/EventInfo/reportSummaryMap")
	assert.Equal(t, "30 bins", lines[len(lines)-1])
}

func TestExecuteMisc(t *testing.T) {
	s, _, _ := newTestShell(t)

	out, quit := run(s, "help")
	assert.False(t, quit)
	assert.Contains(t, out, "Commands:")

	out, _ = run(s, "frobnicate")
	assert.Contains(t, out, "Unknown command: frobnicate")

	_, quit = run(s, "   ")
	assert.False(t, quit)

	for _, cmd := range []string{"exit", "quit", "Q"} {
		_, quit = run(s, cmd)
		assert.True(t, quit, cmd)
	}
}
