package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixed(name string, r Result) Checker {
	return NewCheckerFunc(name, func(context.Context) Result { return r })
}

func TestNewAggregator_Defaults(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	if agg.config.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", agg.config.Timeout)
	}
	if agg.config.Sequential {
		t.Error("checks should run concurrently by default")
	}
}

func TestAggregator_RegisterOrder(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register(fixed("cache", Healthy("ok")))
	agg.Register(fixed("fonts", Healthy("ok")))
	agg.Register(fixed("cache", Degraded("replaced")))

	if diff := cmp.Diff([]string{"cache", "fonts"}, agg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	res, err := agg.Check(context.Background(), "cache")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusDegraded {
		t.Errorf("re-registering should replace the checker, got %v", res.Status)
	}

	agg.Unregister("cache")
	if diff := cmp.Diff([]string{"fonts"}, agg.Names()); diff != "" {
		t.Errorf("Names() after Unregister mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_CheckUnknown(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	if _, err := agg.Check(context.Background(), "nope"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check() error = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	for _, sequential := range []bool{false, true} {
		agg := NewAggregator(AggregatorConfig{Sequential: sequential})
		agg.Register(fixed("a", Healthy("fine")))
		agg.Register(fixed("b", Degraded("slow")))
		agg.Register(fixed("c", Unhealthy("down", nil)))

		results := agg.CheckAll(context.Background())
		got := map[string]Status{}
		for name, r := range results {
			got[name] = r.Status
			if r.Timestamp.IsZero() {
				t.Errorf("%s: timestamp not set", name)
			}
		}
		want := map[string]Status{"a": StatusHealthy, "b": StatusDegraded, "c": StatusUnhealthy}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("sequential=%v: statuses mismatch (-want +got):\n%s", sequential, diff)
		}
		if !errors.Is(results["c"].Error, ErrCheckFailed) {
			t.Errorf("unhealthy result without cause should carry ErrCheckFailed, got %v", results["c"].Error)
		}
	}
}

func TestAggregator_Timeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	release := make(chan struct{})
	defer close(release)
	agg.Register(NewCheckerFunc("stuck", func(context.Context) Result {
		<-release
		return Healthy("late")
	}))

	res := agg.CheckAll(context.Background())["stuck"]
	if res.Status != StatusUnhealthy || !errors.Is(res.Error, ErrCheckTimeout) {
		t.Errorf("stuck check = %v (%v), want unhealthy timeout", res.Status, res.Error)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := map[string]Result{}
			for i, s := range tt.statuses {
				results[string(rune('a'+i))] = Result{Status: s}
			}
			if got := Overall(results); got != tt.want {
				t.Errorf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_Text(t *testing.T) {
	tests := map[Status]string{
		StatusHealthy:   "healthy",
		StatusDegraded:  "degraded",
		StatusUnhealthy: "unhealthy",
		Status(9):       "unknown",
	}
	for s, want := range tests {
		text, err := s.MarshalText()
		if err != nil || string(text) != want {
			t.Errorf("MarshalText(%d) = %q, %v; want %q", int(s), text, err, want)
		}
	}
}
