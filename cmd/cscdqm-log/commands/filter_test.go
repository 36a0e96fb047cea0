package commands

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	out := filepath.Join(t.TempDir(), "refresh.clog")

	filter, err := FilterOptions{Category: "refresh", Run: "42"}.Build()
	require.NoError(t, err)

	n, err := RunFilter(path, filter, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	reader, err := log.NewReader(out)
	require.NoError(t, err)
	defer reader.Close()

	var triggers []string
	for {
		e, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.NotNil(t, e.Refresh)
		triggers = append(triggers, e.Refresh.Trigger)
	}
	assert.Equal(t, []string{"PERIODIC", "RUN_END"}, triggers)
}

func TestRunFilterNoMatches(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	out := filepath.Join(t.TempDir(), "none.clog")

	filter, err := FilterOptions{Run: "7"}.Build()
	require.NoError(t, err)

	n, err := RunFilter(path, filter, out)
	require.NoError(t, err)
	assert.Zero(t, n)
}
