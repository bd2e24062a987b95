package model

import "testing"

func TestStatus_IsValid(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   bool
	}{
		{StatusNotStarted, true},
		{StatusInProgress, true},
		{StatusBlocked, true},
		{StatusDone, true},
		{Status(""), false},
		{Status("bogus"), false},
		{Status("done"), false}, // case matters
	} {
		if got := tc.status.IsValid(); got != tc.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestStatus_Next(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   Status
	}{
		{StatusNotStarted, StatusInProgress},
		{StatusInProgress, StatusBlocked},
		{StatusBlocked, StatusDone},
		{StatusDone, StatusNotStarted}, // wraps
		{Status("bogus"), StatusNotStarted},
	} {
		if got := tc.status.Next(); got != tc.want {
			t.Errorf("Status(%q).Next() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestStatuses_CycleOrder(t *testing.T) {
	want := []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone}
	got := Statuses()
	if len(got) != len(want) {
		t.Fatalf("Statuses() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Statuses()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
