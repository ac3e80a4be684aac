package workflow

import "testing"

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"parsing to parsed", StatusParsing, StatusParsed, true},
		{"parsed to chat_active", StatusParsed, StatusChatActive, true},
		{"chat_active to complete", StatusChatActive, StatusComplete, true},
		{"parsing straight to complete", StatusParsing, StatusComplete, true},
		{"parsed straight to complete", StatusParsed, StatusComplete, true},
		{"complete to complete is idempotent", StatusComplete, StatusComplete, true},
		{"parsed back to parsing", StatusParsed, StatusParsing, false},
		{"complete back to chat_active", StatusComplete, StatusChatActive, false},
		{"same state parsed", StatusParsed, StatusParsed, false},
		{"unknown source", Status("bogus"), StatusParsed, false},
		{"unknown target", StatusParsing, Status("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanAdvance(tt.to); got != tt.want {
				t.Errorf("CanAdvance(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"parsing", "parsed", "chat_active", "complete"} {
		s, err := ParseStatus(valid)
		if err != nil {
			t.Fatalf("ParseStatus(%q) unexpected error: %v", valid, err)
		}
		if s.String() != valid {
			t.Errorf("ParseStatus(%q) = %q", valid, s)
		}
	}

	if _, err := ParseStatus("archived"); err == nil {
		t.Error("ParseStatus(\"archived\") expected error")
	}
}

func TestNeedsChatActivation(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusParsing, true},
		{StatusParsed, true},
		{StatusChatActive, false},
		{StatusComplete, false},
	}

	for _, tt := range tests {
		if got := tt.status.NeedsChatActivation(); got != tt.want {
			t.Errorf("NeedsChatActivation(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	order := []Status{StatusParsing, StatusParsed, StatusChatActive, StatusComplete}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("expected %s to rank below %s", order[i-1], order[i])
		}
	}
	if Status("bogus").Rank() != -1 {
		t.Error("unknown status should rank -1")
	}
}
