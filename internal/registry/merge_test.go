package registry

import (
	"testing"
	"time"
)

func TestMoreComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{name: "empty never overwrites", existing: "Смирнова", incoming: "", want: "Смирнова"},
		{name: "fills empty", existing: "", incoming: "Смирнова", want: "Смирнова"},
		{name: "longer replaces", existing: "Смирнова", incoming: "Смирнова-Петрова", want: "Смирнова-Петрова"},
		{name: "equal length keeps existing", existing: "Иванова", incoming: "Петрова", want: "Иванова"},
		{name: "shorter keeps existing", existing: "Смирнова-Петрова", incoming: "Смирнова", want: "Смирнова-Петрова"},
		{name: "incoming is cleaned first", existing: "Смирнова", incoming: "  Смирнова  ", want: "Смирнова"},
		{name: "rune length not byte length", existing: "Ан", incoming: "Anna", want: "Anna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MoreComplete(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MoreComplete(%q, %q) = %q, want %q", tt.existing, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestFillText(t *testing.T) {
	t.Parallel()

	if got := FillText("RUS", "KAZ"); got != "RUS" {
		t.Errorf("existing value replaced: got %q", got)
	}
	if got := FillText("", " RUS "); got != "RUS" {
		t.Errorf("empty not filled: got %q", got)
	}
}

func TestFillDate(t *testing.T) {
	t.Parallel()

	known := time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC)
	other := time.Date(2011, 6, 2, 0, 0, 0, 0, time.UTC)

	if got := FillDate(&known, &other); got == nil || !got.Equal(known) {
		t.Errorf("known date replaced: got %v", got)
	}
	if got := FillDate(nil, &known); got == nil || !got.Equal(known) {
		t.Errorf("missing date not filled: got %v", got)
	}
	if got := FillDate(nil, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
