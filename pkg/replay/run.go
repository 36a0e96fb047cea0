package replay

import (
	"context"
	"errors"
	"io"

	"github.com/csc-dqm/cscdqm-go/pkg/monitor"
	"github.com/csc-dqm/cscdqm-go/pkg/resolve"
)

// Source yields events until io.EOF.
type Source interface {
	Next() (monitor.Event, error)
}

// Sink receives the monitor callbacks. *monitor.Module implements it.
type Sink interface {
	OnRunBegin(run uint64)
	OnEvent(ev monitor.Event, crates resolve.CrateMap)
	OnLumiBlockBegin(run, lumi uint64)
	OnRunEnd(run uint64)
}

// Compile-time interface satisfaction check.
var _ Sink = (*monitor.Module)(nil)

// Result summarizes a replay.
type Result struct {
	Events     uint64
	Runs       int
	LumiBlocks int
}

// Run reads src to the end and drives sink. A change of run number ends the
// previous run and begins the next; a change of lumi block within a run
// begins a lumi block. The last run is ended at io.EOF. When ctx is
// cancelled Run stops without ending the current run.
func Run(ctx context.Context, src Source, sink Sink, crates resolve.CrateMap) (Result, error) {
	var (
		res     Result
		started bool
		run     uint64
		lumi    uint64
	)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		switch {
		case !started || ev.Run != run:
			if started {
				sink.OnRunEnd(run)
			}
			started = true
			run, lumi = ev.Run, ev.LumiBlock
			res.Runs++
			res.LumiBlocks++
			sink.OnRunBegin(run)
			sink.OnLumiBlockBegin(run, lumi)
		case ev.LumiBlock != lumi:
			lumi = ev.LumiBlock
			res.LumiBlocks++
			sink.OnLumiBlockBegin(run, lumi)
		}

		sink.OnEvent(ev, crates)
		res.Events++
	}

	if started {
		sink.OnRunEnd(run)
	}
	return res, nil
}

type teeSource struct {
	src Source
	w   *Writer
}

// Tee returns a Source that writes every event read from src to w.
func Tee(src Source, w *Writer) Source {
	return &teeSource{src: src, w: w}
}

func (t *teeSource) Next() (monitor.Event, error) {
	ev, err := t.src.Next()
	if err != nil {
		return ev, err
	}
	if err := t.w.Write(ev); err != nil {
		return monitor.Event{}, err
	}
	return ev, nil
}
