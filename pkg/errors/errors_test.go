package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeBudgetExhausted, "no layout after %d attempts", 10)

	if err.Code != ErrCodeBudgetExhausted {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeBudgetExhausted)
	}
	if err.Message != "no layout after 10 attempts" {
		t.Errorf("Message = %v, want %v", err.Message, "no layout after 10 attempts")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}

	expected := "BUDGET_EXHAUSTED: no layout after 10 attempts"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidLevel, cause, "read %s", "crypt.yaml")

	if err.Code != ErrCodeInvalidLevel {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLevel)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	expected := "INVALID_LEVEL: read crypt.yaml: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNoEntranceNode, "graph g1"),
			code:     ErrCodeNoEntranceNode,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeNoEntranceNode, "graph g1"),
			code:     ErrCodeBudgetExhausted,
			expected: false,
		},
		{
			name:     "wrapped outer code",
			err:      Wrap(ErrCodeBudgetExhausted, New(ErrCodeNoEntranceNode, "inner"), "outer"),
			code:     ErrCodeBudgetExhausted,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeNoGraphsAvailable, "test"),
			expected: ErrCodeNoGraphsAvailable,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidGraph, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	if !IsInputError(New(ErrCodeInvalidTemplate, "x")) {
		t.Error("INVALID_TEMPLATE should be an input error")
	}
	if IsInputError(New(ErrCodeBudgetExhausted, "x")) {
		t.Error("BUDGET_EXHAUSTED should not be an input error")
	}
	if IsInputError(errors.New("plain")) {
		t.Error("plain errors should not be input errors")
	}
}
