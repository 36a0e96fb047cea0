package schedule

import (
	"errors"
	"testing"
)

// recorder captures refresh calls.
type recorder struct {
	calls []Trigger
}

func (r *recorder) Refresh(t Trigger) {
	r.calls = append(r.calls, t)
}

func TestTriggersFromKey(t *testing.T) {
	tests := []struct {
		key  uint
		want []Trigger
	}{
		{0, nil},
		{1, []Trigger{TriggerRunEnd}},
		{2, []Trigger{TriggerLumiBlockBegin}},
		{4, []Trigger{TriggerPeriodic}},
		{7, []Trigger{TriggerRunEnd, TriggerLumiBlockBegin, TriggerPeriodic}},
		{8 | 4, []Trigger{TriggerPeriodic}},
	}

	for _, tt := range tests {
		got := TriggersFromKey(tt.key).List()
		if len(got) != len(tt.want) {
			t.Fatalf("TriggersFromKey(%d) = %v, want %v", tt.key, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("TriggersFromKey(%d)[%d] = %v, want %v", tt.key, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTriggersString(t *testing.T) {
	if s := NewTriggers().String(); s != "NONE" {
		t.Errorf("empty String() = %q", s)
	}
	if s := NewTriggers(TriggerPeriodic, TriggerRunEnd).String(); s != "RUN_END|PERIODIC" {
		t.Errorf("String() = %q", s)
	}
	if k := NewTriggers(TriggerLumiBlockBegin, TriggerPeriodic).Key(); k != 6 {
		t.Errorf("Key() = %d, want 6", k)
	}
}

func TestPeriodicEveryFiveEvents(t *testing.T) {
	rec := &recorder{}
	s := New(NewTriggers(TriggerPeriodic), 5, rec)

	var fired []uint64
	for i := 1; i <= 16; i++ {
		if s.OnEvent() {
			fired = append(fired, s.Events())
		}
	}

	want := []uint64{5, 10, 15}
	if len(fired) != len(want) {
		t.Fatalf("fired on %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %d, want %d", i, fired[i], want[i])
		}
	}
	if len(rec.calls) != 3 {
		t.Errorf("refresher called %d times, want 3", len(rec.calls))
	}
	if s.Refreshes(TriggerPeriodic) != 3 {
		t.Errorf("Refreshes(PERIODIC) = %d, want 3", s.Refreshes(TriggerPeriodic))
	}
}

func TestPeriodicFrequencyOneFiresOnFirstEvent(t *testing.T) {
	rec := &recorder{}
	s := New(NewTriggers(TriggerPeriodic), 1, rec)

	if !s.OnEvent() {
		t.Error("first event with frequency 1 should refresh")
	}
	if !s.OnEvent() {
		t.Error("second event with frequency 1 should refresh")
	}
}

func TestPeriodicInvalidFrequencyDisables(t *testing.T) {
	for _, freq := range []int{0, -3} {
		rec := &recorder{}
		s := New(NewTriggers(TriggerRunEnd, TriggerLumiBlockBegin, TriggerPeriodic), freq, rec)

		for i := 0; i < 100; i++ {
			if s.OnEvent() {
				t.Fatalf("frequency %d: periodic trigger fired at event %d", freq, s.Events())
			}
		}
		if s.PeriodicEnabled() {
			t.Errorf("frequency %d: PeriodicEnabled() = true", freq)
		}
		if !errors.Is(s.FrequencyError(), ErrInvalidFrequency) {
			t.Errorf("frequency %d: FrequencyError() = %v", freq, s.FrequencyError())
		}
		if s.Events() != 100 {
			t.Errorf("Events() = %d, want 100", s.Events())
		}

		// Other triggers keep working.
		if !s.OnRunEnd() || !s.OnLumiBlockBegin() {
			t.Errorf("frequency %d: boundary triggers should still fire", freq)
		}
	}
}

func TestPeriodicBitUnset(t *testing.T) {
	rec := &recorder{}
	s := New(NewTriggers(TriggerRunEnd), 1, rec)
	for i := 0; i < 10; i++ {
		s.OnEvent()
	}
	if len(rec.calls) != 0 {
		t.Errorf("refresher called %d times without periodic trigger", len(rec.calls))
	}
	if s.FrequencyError() != nil {
		t.Errorf("FrequencyError() = %v, want nil", s.FrequencyError())
	}
}

func TestRunEndOnly(t *testing.T) {
	rec := &recorder{}
	s := New(TriggersFromKey(1), 1, rec)

	for i := 0; i < 20; i++ {
		if s.OnEvent() {
			t.Fatal("OnEvent fired with run-end only")
		}
	}
	if s.OnLumiBlockBegin() {
		t.Fatal("OnLumiBlockBegin fired with run-end only")
	}

	for run := 1; run <= 3; run++ {
		if !s.OnRunEnd() {
			t.Fatalf("OnRunEnd %d did not fire", run)
		}
		if len(rec.calls) != run {
			t.Fatalf("after %d run ends refresher called %d times", run, len(rec.calls))
		}
	}
	for _, c := range rec.calls {
		if c != TriggerRunEnd {
			t.Errorf("unexpected trigger %v", c)
		}
	}
}

func TestLumiBlockIgnoresEventPhase(t *testing.T) {
	rec := &recorder{}
	s := New(NewTriggers(TriggerLumiBlockBegin, TriggerPeriodic), 4, rec)

	s.OnEvent()
	s.OnEvent()
	if !s.OnLumiBlockBegin() {
		t.Fatal("lumi trigger should fire mid-period")
	}
	s.OnEvent()
	s.OnEvent() // 4th event: periodic

	want := []Trigger{TriggerLumiBlockBegin, TriggerPeriodic}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("calls[%d] = %v, want %v", i, rec.calls[i], want[i])
		}
	}
	if s.OnRunEnd() {
		t.Error("run-end trigger not enabled")
	}
}

func TestEachCallbackFiresAtMostOnce(t *testing.T) {
	rec := &recorder{}
	s := New(TriggersFromKey(7), 1, rec)

	s.OnEvent()
	s.OnLumiBlockBegin()
	s.OnRunEnd()

	if len(rec.calls) != 3 {
		t.Fatalf("calls = %v, want one per callback", rec.calls)
	}
}

func TestRefresherFunc(t *testing.T) {
	var got Trigger = 99
	s := New(NewTriggers(TriggerRunEnd), 1, RefresherFunc(func(tr Trigger) { got = tr }))
	s.OnRunEnd()
	if got != TriggerRunEnd {
		t.Errorf("RefresherFunc received %v", got)
	}
}

func TestNilRefresher(t *testing.T) {
	s := New(TriggersFromKey(7), 2, nil)
	s.OnEvent()
	if !s.OnEvent() {
		t.Error("nil refresher should still report firing")
	}
	if s.Refreshes(TriggerPeriodic) != 1 {
		t.Errorf("Refreshes(PERIODIC) = %d, want 1", s.Refreshes(TriggerPeriodic))
	}
}
