package schedule

import "testing"

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tod
}

func rng(t *testing.T, start, end string) *Range {
	t.Helper()
	return &Range{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if int(got) != tt.minutes {
			t.Errorf("%q: got %d minutes, want %d", tt.in, got, tt.minutes)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "12:00", "23:59"} {
		if got := mustTime(t, s).String(); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestValidateNoWindow(t *testing.T) {
	ix := NewIndex()
	d := ix.Validate(Slot{Date: "2024-06-10", Time: "10:00"}, mustTime(t, "10:00"))
	if d.Accepted {
		t.Fatal("expected rejection for date with no window")
	}
	if d.Reason != ReasonUnavailable {
		t.Errorf("reason: got %q, want %q", d.Reason, ReasonUnavailable)
	}
}

func TestValidateBookedSlotWins(t *testing.T) {
	ix := NewIndex()
	ix.Windows["2024-06-10"] = Window{Morning: rng(t, "09:00", "12:00")}
	ix.Booked[Slot{Date: "2024-06-10", Time: "10:00"}] = struct{}{}

	d := ix.Validate(Slot{Date: "2024-06-10", Time: "10:00"}, mustTime(t, "10:00"))
	if d.Accepted || d.Reason != ReasonSlotBooked {
		t.Errorf("got %+v, want rejection %q", d, ReasonSlotBooked)
	}

	// the booked check runs before the window check, so a booked slot on
	// a date with no window still reports "already booked"
	ix2 := NewIndex()
	ix2.Booked[Slot{Date: "2024-06-11", Time: "10:00"}] = struct{}{}
	d = ix2.Validate(Slot{Date: "2024-06-11", Time: "10:00"}, mustTime(t, "10:00"))
	if d.Reason != ReasonSlotBooked {
		t.Errorf("check order: got %q, want %q", d.Reason, ReasonSlotBooked)
	}
}

func TestValidateInclusiveBounds(t *testing.T) {
	ix := NewIndex()
	ix.Windows["2024-06-10"] = Window{Morning: rng(t, "09:00", "12:00")}

	tests := []struct {
		time   string
		accept bool
	}{
		{"09:00", true}, // lower bound inclusive
		{"12:00", true}, // upper bound inclusive
		{"10:30", true},
		{"08:59", false},
		{"12:01", false},
	}
	for _, tt := range tests {
		d := ix.Validate(Slot{Date: "2024-06-10", Time: tt.time}, mustTime(t, tt.time))
		if d.Accepted != tt.accept {
			t.Errorf("%s: accepted=%v, want %v (%s)", tt.time, d.Accepted, tt.accept, d.Reason)
		}
		if !tt.accept && d.Reason != ReasonOutsideWindow {
			t.Errorf("%s: reason %q, want %q", tt.time, d.Reason, ReasonOutsideWindow)
		}
	}
}

func TestValidateEveningOnlyWindow(t *testing.T) {
	ix := NewIndex()
	ix.Windows["2024-06-10"] = Window{Evening: rng(t, "17:00", "20:00")}

	// a morning time must not match when only the evening window is set
	d := ix.Validate(Slot{Date: "2024-06-10", Time: "10:00"}, mustTime(t, "10:00"))
	if d.Accepted {
		t.Fatal("morning time accepted against evening-only window")
	}
	if d.Reason != ReasonOutsideWindow {
		t.Errorf("reason: got %q", d.Reason)
	}

	d = ix.Validate(Slot{Date: "2024-06-10", Time: "18:00"}, mustTime(t, "18:00"))
	if !d.Accepted {
		t.Errorf("evening time rejected: %s", d.Reason)
	}
}

func TestValidateBothWindows(t *testing.T) {
	ix := NewIndex()
	ix.Windows["2024-06-10"] = Window{
		Morning: rng(t, "09:00", "11:00"),
		Evening: rng(t, "17:00", "20:00"),
	}

	for _, tt := range []struct {
		time   string
		accept bool
	}{
		{"09:30", true},
		{"17:00", true},
		{"20:00", true},
		{"13:00", false}, // gap between the windows
		{"20:01", false},
	} {
		d := ix.Validate(Slot{Date: "2024-06-10", Time: tt.time}, mustTime(t, tt.time))
		if d.Accepted != tt.accept {
			t.Errorf("%s: accepted=%v, want %v", tt.time, d.Accepted, tt.accept)
		}
	}
}

func TestValidateSecondBookingRejected(t *testing.T) {
	ix := NewIndex()
	ix.Windows["2024-06-10"] = Window{Morning: rng(t, "09:00", "11:00")}

	slot := Slot{Date: "2024-06-10", Time: "10:00"}
	if d := ix.Validate(slot, mustTime(t, "10:00")); !d.Accepted {
		t.Fatalf("first booking rejected: %s", d.Reason)
	}

	// caller records the accepted booking, second attempt must fail
	ix.Booked[slot] = struct{}{}
	if d := ix.Validate(slot, mustTime(t, "10:00")); d.Accepted || d.Reason != ReasonSlotBooked {
		t.Errorf("second booking: got %+v", d)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		actor  Actor
		target string
		want   bool
	}{
		{ActorDoctor, StatusCompleted, true},
		{ActorDoctor, StatusCancelled, true},
		{ActorDoctor, StatusBooked, false},
		{ActorPatient, StatusCancelled, true},
		{ActorPatient, StatusCompleted, false},
		{ActorPatient, StatusBooked, false},
		{Actor("admin"), StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.actor, tt.target); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.actor, tt.target, got, tt.want)
		}
	}
}
