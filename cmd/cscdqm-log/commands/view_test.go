package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-dqm/cscdqm-go/pkg/log"
)

func TestRunView(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, log.Filter{}, &buf))
	out := buf.String()

	assert.Contains(t, out, "2026-03-14T09:30:00.000000Z [5d0c7e3a] ERROR")
	assert.Contains(t, out, `Input: "CSC_ME_+5"`)
	assert.Contains(t, out, "Triggers: RUN_END|PERIODIC  Frequency: 100")
	assert.Contains(t, out, "Masks: 2/3 accepted  Definitions: 8")
	assert.Contains(t, out, "Tier: DDU  DDU: 750")
	assert.Contains(t, out, "Chambers: 540")
	assert.Contains(t, out, "reportSummary: 0.2500 (135/540 chambers)")
	assert.Contains(t, out, "RUN_END (refreshed)")
	assert.Contains(t, out, "CSC run 42 lumi 2 events 180")
}

func TestRunViewCategoryFilter(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	filter, err := FilterOptions{Category: "boundary"}.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RunView(path, filter, &buf))

	assert.Equal(t, 2, strings.Count(buf.String(), "BOUNDARY"))
	assert.NotContains(t, buf.String(), "REFRESH")
}

func TestFormatEventMaskedSummary(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: traceStart,
		SessionID: "abc",
		Category:  log.CategoryRefresh,
		Refresh:   &log.RefreshEvent{Trigger: "LUMI_BEGIN", ReportSummary: -1},
	})

	assert.Contains(t, buf.String(), "[abc]")
	assert.Contains(t, buf.String(), "reportSummary: n/a (0/0 chambers)")
}

func TestFilterOptionsBuild(t *testing.T) {
	tests := []struct {
		name    string
		opts    FilterOptions
		wantErr bool
		check   func(t *testing.T, f log.Filter)
	}{
		{
			name: "empty",
			check: func(t *testing.T, f log.Filter) {
				assert.Nil(t, f.Category)
				assert.Nil(t, f.Run)
				assert.Empty(t, f.Trigger)
			},
		},
		{
			name: "category case-insensitive",
			opts: FilterOptions{Category: "Refresh"},
			check: func(t *testing.T, f log.Filter) {
				require.NotNil(t, f.Category)
				assert.Equal(t, log.CategoryRefresh, *f.Category)
			},
		},
		{
			name: "trigger aliases",
			opts: FilterOptions{Trigger: "lumi_begin"},
			check: func(t *testing.T, f log.Filter) {
				assert.Equal(t, "LUMI_BEGIN", f.Trigger)
			},
		},
		{
			name: "run and times",
			opts: FilterOptions{Run: "42", TimeStart: "2026-03-14T09:30:00Z", TimeEnd: "2026-03-14T10:00:00Z"},
			check: func(t *testing.T, f log.Filter) {
				require.NotNil(t, f.Run)
				assert.Equal(t, uint64(42), *f.Run)
				require.NotNil(t, f.TimeStart)
				require.NotNil(t, f.TimeEnd)
				assert.True(t, f.TimeStart.Equal(traceStart))
			},
		},
		{name: "bad category", opts: FilterOptions{Category: "wire"}, wantErr: true},
		{name: "bad trigger", opts: FilterOptions{Trigger: "hourly"}, wantErr: true},
		{name: "bad run", opts: FilterOptions{Run: "-1"}, wantErr: true},
		{name: "bad time", opts: FilterOptions{TimeStart: "yesterday"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.opts.Build()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, f)
		})
	}
}
