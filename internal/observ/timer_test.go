package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)

	stop := timer.Start("read")
	stop("")
	stop = timer.Start("format")
	stop("12 tokens")

	r := timer.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "read" || r.Phases[1].Note != "12 tokens" {
		t.Fatalf("unexpected phases %+v", r.Phases)
	}
	if r.Phases[0].DurationMS != 1 || r.TotalMS != 2 {
		t.Fatalf("unexpected durations %+v", r)
	}
}

func TestSumKeepsFirstSeenOrder(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "read", DurationMS: 1, Count: 1}, {Name: "format", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "format", DurationMS: 3, Count: 1}, {Name: "write", DurationMS: 1, Count: 1}}}

	sum := Sum(a, b)
	var names []string
	for _, p := range sum.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "read,format,write" {
		t.Fatalf("order = %q", got)
	}
	if sum.TotalMS != 7 || sum.Phases[1].DurationMS != 5 || sum.Phases[1].Count != 2 {
		t.Fatalf("unexpected sum %+v", sum)
	}
	if !strings.Contains(sum.Summary(), "(2 files)") {
		t.Fatalf("summary should mention file count:\n%s", sum.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Start("x")("")
	if len(timer.Report().Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}
