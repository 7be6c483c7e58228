package domain

import "testing"

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Зимний Кубок  ", want: "Зимний Кубок"},
		{name: "tabs to spaces", input: "Зимний\tКубок", want: "Зимний Кубок"},
		{name: "collapse runs", input: "Зимний   Кубок", want: "Зимний Кубок"},
		{name: "case preserved", input: "СШОР Звезда", want: "СШОР Звезда"},
		{name: "html entities", input: "Кафе &quot;Лёд&quot;", want: `Кафе "Лёд"`},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	if got := NormalizeText("  Иванова   Софья "); got != "иванова софья" {
		t.Errorf("NormalizeText() = %q", got)
	}
}

func TestFixLatinLookalikes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "latin o in cyrillic word", input: "3 Юнoшеский", want: "3 Юношеский"},
		{name: "uppercase lookalikes", input: "УCПEX", want: "УСПЕХ"},
		{name: "unmapped latin letter kept", input: "CПOPT", want: "СПОРT"},
		{name: "pure cyrillic unchanged", input: "Дебют", want: "Дебют"},
		{name: "digits unchanged", input: "1 юн", want: "1 юн"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FixLatinLookalikes(tt.input); got != tt.want {
				t.Errorf("FixLatinLookalikes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseRepeatedWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "doubled name", input: "Софья Софья", want: "Софья"},
		{name: "single word", input: "Софья", want: "Софья"},
		{name: "non-consecutive kept", input: "Анна Мария Анна", want: "Анна Мария Анна"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CollapseRepeatedWords(tt.input); got != tt.want {
				t.Errorf("CollapseRepeatedWords(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
