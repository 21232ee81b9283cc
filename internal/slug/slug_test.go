package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Phase One", "phase-one"},
		{"  DB/Cache layer!  ", "db-cache-layer"},
		{"already-a-slug", "already-a-slug"},
		{"Mixed_CASE and  spaces", "mixed-case-and-spaces"},
		{"v2.0 Release", "v2-0-release"},
		{"", ""},
		{"!!!", ""},
		{"42", "42"},
	}

	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithKind(t *testing.T) {
	tests := []struct {
		kind  string
		title string
		want  string
	}{
		{"milestone", "Phase One", "milestone-phase-one"},
		{"task", "Add login", "task-add-login"},
		{"epic", "", "epic"},
		{"story", "???", "story"},
	}

	for _, tt := range tests {
		if got := WithKind(tt.kind, tt.title); got != tt.want {
			t.Errorf("WithKind(%q, %q) = %q, want %q", tt.kind, tt.title, got, tt.want)
		}
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	const in = "Refactor the Completion Gateway (v2)"
	first := Make(in)
	for i := 0; i < 10; i++ {
		if got := Make(in); got != first {
			t.Fatalf("Make is not stable: %q then %q", first, got)
		}
	}
}
