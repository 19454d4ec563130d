package keys

import "testing"

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		args []any
		want string
	}{
		{"no args", "User", nil, "user"},
		{"scalar args", "User", []any{1, "b"}, "user/1/b"},
		{"nested type name", "Admin::UserProfile", nil, "admin/userprofile"},
		{"case folded", "User", []any{"ABC"}, "user/abc"},
		{"whitespace stripped", "User", []any{"New York"}, "user/newyork"},
		{"slice preserves order", "User", []any{[]int{2, 1}}, "user/[21]"},
		{"map renders sorted", "User", []any{map[string]any{"b": 2, "a": 1}}, "user/map[a:1b:2]"},
		{"leading separator dropped", "::User", nil, "user"},
		{"trailing separator dropped", "User::", nil, "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.typ, tt.args); got != tt.want {
				t.Fatalf("Build(%q, %v) = %q, want %q", tt.typ, tt.args, got, tt.want)
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build("User", []any{map[string]any{"page": 2, "per": 10}})
	b := Build("User", []any{map[string]any{"per": 10, "page": 2}})
	if a != b {
		t.Fatalf("equal nested args produced different keys: %q vs %q", a, b)
	}
}

func TestBuildOrderSensitive(t *testing.T) {
	a := Build("User", []any{"x", "y"})
	b := Build("User", []any{"y", "x"})
	if a == b {
		t.Fatalf("reordered args should produce different keys, both %q", a)
	}
}
