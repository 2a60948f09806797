package listing

import "testing"

func TestCanTransitionTo(t *testing.T) {
	table := DefaultTransitions()

	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusOpen, StatusClaimed, true},
		{StatusOpen, StatusResolved, true},
		{StatusClaimed, StatusResolved, true},
		{StatusClaimed, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusResolved, StatusClaimed, false},
		{StatusOpen, StatusOpen, false},
		{StatusOpen, Status("archived"), false},
	}

	for _, tc := range cases {
		l := &Listing{Status: tc.from}
		if got := l.CanTransitionTo(table, tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTerminalStatusHasNoExits(t *testing.T) {
	table := DefaultTransitions()
	if len(table[StatusResolved]) != 0 {
		t.Errorf("expected resolved to be terminal, got exits %v", table[StatusResolved])
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusClaimed, StatusResolved} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ValidStatus(Status("pending")) {
		t.Error("expected 'pending' to be invalid")
	}
	if ValidStatus(Status("")) {
		t.Error("expected empty status to be invalid")
	}
}

func TestDeactivate(t *testing.T) {
	l := &Listing{Active: true}
	l.Deactivate()
	if l.IsActive() {
		t.Error("expected listing to be inactive after Deactivate")
	}
	if l.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be refreshed")
	}
}
