package models

import "testing"

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"draft", "email_generated", "sent"} {
		s, err := ParseStatus(valid)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", valid, err)
		}
		if s.String() != valid {
			t.Fatalf("expected %q, got %q", valid, s.String())
		}
	}

	for _, invalid := range []string{"", "DRAFT", "completed", "archived"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Fatalf("%q: expected error, got nil", invalid)
		}
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusEmailGenerated, true},
		{StatusEmailGenerated, StatusSent, true},
		{StatusDraft, StatusSent, false},          // no skipping
		{StatusEmailGenerated, StatusDraft, false}, // no reverse
		{StatusSent, StatusDraft, false},
		{StatusSent, StatusEmailGenerated, false},
		{StatusDraft, StatusDraft, false},
		{StatusSent, StatusSent, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s → %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}
