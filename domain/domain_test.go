package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	err := DomainError{Code: "TEST_ERROR", Message: "Test message"}
	assert.Equal(t, "[TEST_ERROR] Test message", err.Error())

	withCause := DomainError{Code: "TEST_ERROR", Message: "Test message", Cause: errors.New("underlying error")}
	assert.Equal(t, "[TEST_ERROR] Test message: underlying error", withCause.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewAnalysisError("failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, DomainError{Code: "X", Message: "y"}.Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		msg  string
	}{
		{"invalid input", NewInvalidInputError("bad input", nil), ErrCodeInvalidInput, "bad input"},
		{"file not found", NewFileNotFoundError("/path/to/file", nil), ErrCodeFileNotFound, "file not found: /path/to/file"},
		{"parse", NewParseError("test.js", errors.New("syntax")), ErrCodeParseError, "failed to parse test.js"},
		{"analysis", NewAnalysisError("analysis failed", nil), ErrCodeAnalysisError, "analysis failed"},
		{"config", NewConfigError("invalid config", nil), ErrCodeConfigError, "invalid config"},
		{"output", NewOutputError("write failed", nil), ErrCodeOutputError, "write failed"},
		{"unsupported format", NewUnsupportedFormatError("xml"), ErrCodeUnsupportedFormat, "unsupported format: xml"},
		{"validation", NewValidationError("validation failed"), ErrCodeInvalidInput, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var de DomainError
			require.ErrorAs(t, tt.err, &de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.msg, de.Message)
		})
	}
}

func TestErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewConfigError("bad", nil))
	assert.Equal(t, ErrCodeConfigError, ErrorCode(wrapped))
	assert.Empty(t, ErrorCode(errors.New("plain")))
	assert.Empty(t, ErrorCode(nil))
}

func TestEnumValues(t *testing.T) {
	assert.Equal(t, "text", string(OutputFormatText))
	assert.Equal(t, "json", string(OutputFormatJSON))
	assert.Equal(t, "yaml", string(OutputFormatYAML))
	assert.Equal(t, "csv", string(OutputFormatCSV))
	assert.Equal(t, "html", string(OutputFormatHTML))

	assert.Equal(t, "cognitive", string(SortByCognitive))
	assert.Equal(t, "cyclomatic", string(SortByCyclomatic))
	assert.Equal(t, "name", string(SortByName))
	assert.Equal(t, "location", string(SortByLocation))

	assert.Equal(t, "low", string(RiskLevelLow))
	assert.Equal(t, "medium", string(RiskLevelMedium))
	assert.Equal(t, "high", string(RiskLevelHigh))
}
