package scaffold

import (
	"errors"
	"testing"
)

func TestResolveProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "myapp", "myapp", false},
		{"trailing_space", "MyApp ", "MyApp", false},
		{"leading_and_trailing", "  api-server\t", "api-server", false},
		{"empty", "", "server", false},
		{"whitespace_only", "   ", "server", false},
		{"forward_slash", "foo/bar", "", true},
		{"backslash", `foo\bar`, "", true},
		{"dot", ".", "", true},
		{"dotdot", "..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProjectName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Fatalf("ResolveProjectName(%q) error = %v, want ErrInvalidName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveProjectName(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveProjectName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
