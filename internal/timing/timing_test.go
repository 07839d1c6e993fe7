package timing

import (
	"errors"
	"testing"
	"time"
)

type stageObservation struct {
	stage string
	err   error
}

type fakeObserver struct {
	observed []stageObservation
}

func (f *fakeObserver) ObserveStage(stage string, d time.Duration, err error) {
	f.observed = append(f.observed, stageObservation{stage: stage, err: err})
}

func TestStage(t *testing.T) {
	obs := &fakeObserver{}
	boom := errors.New("boom")

	if err := Stage("sentences", obs, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Stage("topics", obs, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := Stage("untracked", nil, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(obs.observed) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.observed))
	}
	if obs.observed[0].stage != "sentences" || obs.observed[0].err != nil {
		t.Fatalf("unexpected first observation %+v", obs.observed[0])
	}
	if obs.observed[1].stage != "topics" || !errors.Is(obs.observed[1].err, boom) {
		t.Fatalf("unexpected second observation %+v", obs.observed[1])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{d: 0, expected: "00:00:00.000"},
		{d: 1500 * time.Millisecond, expected: "00:00:01.500"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, expected: "01:02:03.000"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Fatalf("expected %s, got %s", tt.expected, got)
		}
	}
}
