package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2024 || d.Month != time.January || d.Day != 31 {
		t.Errorf("ParseDate(2024-01-31) = %v", d)
	}

	if _, err := ParseDate("31/01/2024"); err == nil {
		t.Error("ParseDate accepted a non-ISO date")
	}
}

func TestDate_DaysUntil(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-03", 2},
		{"2024-01-03", "2024-01-01", -2},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2023-12-31", "2024-01-01", 1},
	} {
		a, _ := ParseDate(tc.a)
		b, _ := ParseDate(tc.b)
		if got := a.DaysUntil(b); got != tc.want {
			t.Errorf("%s.DaysUntil(%s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2024, time.January, 30)
	if got := d.AddDays(3).String(); got != "2024-02-02" {
		t.Errorf("AddDays(3) = %s, want 2024-02-02", got)
	}
	if got := d.AddDays(-30).String(); got != "2023-12-31" {
		t.Errorf("AddDays(-30) = %s, want 2023-12-31", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-06-05"` {
		t.Errorf("marshaled as %s, want \"2024-06-05\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip changed date: %v != %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &back); err == nil {
		t.Error("unmarshal accepted garbage")
	}

	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatalf("unmarshal empty string: %v", err)
	}
	if !back.IsZero() {
		t.Errorf("empty string decoded to %v, want zero date", back)
	}
}

func TestDate_OptionalFieldRoundTrip(t *testing.T) {
	due := NewDate(2024, time.March, 10)
	it := &Item{ID: "it-1", BoardID: "bd-1", GroupID: "gr-1", Title: "x", Status: StatusNotStarted, DueDate: &due}

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.DueDate == nil || *back.DueDate != due {
		t.Errorf("due date did not survive round trip: %+v", back.DueDate)
	}
	if back.StartDate != nil || back.TimelineStart != nil || back.TimelineEnd != nil {
		t.Error("absent date fields became present after round trip")
	}
}

func TestMinMaxDate(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.February, 1)
	if MinDate(a, b) != a || MinDate(b, a) != a {
		t.Error("MinDate wrong")
	}
	if MaxDate(a, b) != b || MaxDate(b, a) != b {
		t.Error("MaxDate wrong")
	}
	if MinDate(a, a) != a || MaxDate(a, a) != a {
		t.Error("Min/MaxDate not reflexive")
	}
}
