package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestAnalyzerErrorFormat(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(RootMissing, "root directory not found", nil)
		got := err.Error()
		if got != "[ROOT_MISSING] root directory not found" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := stderrors.New("stat /missing: no such file or directory")
		err := New(RootMissing, "root directory not found", cause)
		got := err.Error()
		if !strings.Contains(got, "ROOT_MISSING") {
			t.Errorf("Error() should contain code, got: %s", got)
		}
		if !strings.Contains(got, cause.Error()) {
			t.Errorf("Error() should contain cause, got: %s", got)
		}
	})
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New(ParseFailure, "cannot parse", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var ae *AnalyzerError
	if !stderrors.As(err, &ae) {
		t.Fatal("errors.As should match *AnalyzerError")
	}
	if ae.Code != ParseFailure {
		t.Errorf("Code = %s, want %s", ae.Code, ParseFailure)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(NameCollision, "duplicate module name", nil).WithDetails(map[string]string{
		"name": "pkg.util",
	})
	details, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatalf("Details type = %T", err.Details)
	}
	if details["name"] != "pkg.util" {
		t.Errorf("Details[name] = %q", details["name"])
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{RootMissing, true},
		{InternalError, true},
		{DiscoveryPath, false},
		{ParseFailure, false},
		{ResolutionAmbiguity, false},
		{NameCollision, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsFatal(tt.code); got != tt.want {
				t.Errorf("IsFatal(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		d := NewDiagnostic(ParseFailure, "pkg/broken.py", "invalid syntax at line 3")
		got := d.String()
		if got != "[PARSE_FAILURE] pkg/broken.py: invalid syntax at line 3" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("without file", func(t *testing.T) {
		d := Diagnostic{Code: NameCollision, Message: "pkg overwritten"}
		if got := d.String(); got != "[NAME_COLLISION] pkg overwritten" {
			t.Errorf("String() = %q", got)
		}
	})
}
