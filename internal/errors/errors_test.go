package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestClassifiedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestClassifiedError_WithContext(t *testing.T) {
	err := New(CategoryRender, SeverityWarning, "container missing").
		WithContext("page", "a.html").
		WithContext("container", "this")

	if err.Context["page"] != "a.html" {
		t.Errorf("Context[page] = %v, want a.html", err.Context["page"])
	}
	if err.Context["container"] != "this" {
		t.Errorf("Context[container] = %v, want this", err.Context["container"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	wrapped := fmt.Errorf("outer: %w", ContainerNotFound("this"))
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match render category", configErr, CategoryRender, false},
		{"wrapped render error matches", wrapped, CategoryRender, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestIsRetryableAndCategory(t *testing.T) {
	cause := fmt.Errorf("bind: address in use")
	err := WrapRetryable(cause, CategoryNetwork, SeverityError, "listen failed")
	if !IsRetryable(err) {
		t.Error("expected retryable")
	}
	if !stdErrors.Is(err, cause) {
		t.Error("cause should be reachable via errors.Is")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("plain error should not be retryable")
	}
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want internal", got)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/crumbtrail.yaml")
		if err.Category != CategoryConfig || err.Severity != SeverityFatal {
			t.Errorf("unexpected classification %s/%s", err.Category, err.Severity)
		}
		if err.Context["path"] != "/path/to/crumbtrail.yaml" {
			t.Errorf("Context[path] = %v", err.Context["path"])
		}
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("site.root", "required")
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["field"] != "site.root" || err.Context["reason"] != "required" {
			t.Errorf("unexpected context %v", err.Context)
		}
	})

	t.Run("PageWriteError", func(t *testing.T) {
		cause := fmt.Errorf("read-only")
		err := PageWriteError("a.html", cause)
		if !stdErrors.Is(err, cause) {
			t.Error("cause lost")
		}
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	a := NewCLIErrorAdapter(false, logger)

	var out bytes.Buffer
	var code int
	a.out = &out
	a.exit = func(c int) { code = c }

	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{fmt.Errorf("plain"), 1},
		{ValidationFailed("x", "y"), 2},
		{ConfigNotFound("c.yaml"), 7},
		{ServerError(":8080", fmt.Errorf("boom")), 8},
		{InternalError("oops", nil), 10},
		{BuildFailed("inject", fmt.Errorf("boom")), 11},
	}
	for _, c := range cases {
		if got := a.ExitCodeFor(c.err); got != c.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", c.err, got, c.code)
		}
	}

	if got := a.FormatError(ConfigNotFound("c.yaml")); got != "configuration file not found" {
		t.Errorf("FormatError = %q", got)
	}
	if got := a.FormatError(BuildFailed("inject", nil)); got != "build: build failed" {
		t.Errorf("FormatError = %q", got)
	}

	a.HandleError(ConfigNotFound("c.yaml"))
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if out.String() != "configuration file not found\n" {
		t.Errorf("stderr = %q", out.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("category=config")) {
		t.Errorf("expected category in log output, got %q", logs.String())
	}
}
