package ui

import (
	"strings"
	"testing"

	"scadfmt/internal/driver"
)

func TestApplyEventTracksFinalStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("formatting", []string{"a.scad", "b.scad"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.scad", Stage: driver.StageFormat, Status: driver.StatusWorking})
	if m.items[0].status != "formatting" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.scad", Status: driver.StatusChanged})
	m.applyEvent(driver.Event{File: "a.scad", Stage: driver.StageRead, Status: driver.StatusWorking})
	if m.items[0].status != "changed" || !m.items[0].final {
		t.Fatalf("final status must stick: %+v", m.items[0])
	}
	m.applyEvent(driver.Event{File: "unknown.scad", Status: driver.StatusError})
	if m.finished() != 1 {
		t.Fatalf("finished = %d, want 1", m.finished())
	}

	view := m.View()
	if !strings.Contains(view, "formatting: 1/2") || !strings.Contains(view, "b.scad") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
