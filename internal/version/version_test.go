package version

import (
	"testing"
)

func TestInfo(t *testing.T) {
	origVersion := Version
	origCommit := Commit
	defer func() {
		Version = origVersion
		Commit = origCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "unknown commit",
			version: "1.0.0",
			commit:  "unknown",
			want:    "1.0.0",
		},
		{
			name:    "full commit hash is truncated",
			version: "1.2.0",
			commit:  "abcdef1234567890",
			want:    "1.2.0 (abcdef1)",
		},
		{
			name:    "short commit stays as is",
			version: "1.2.0",
			commit:  "abc",
			want:    "1.2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			Commit = tt.commit
			if got := Info(); got != tt.want {
				t.Errorf("Info() = %q, want %q", got, tt.want)
			}
		})
	}
}
