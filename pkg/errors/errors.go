// Package errors defines the categorized error taxonomy used across the
// report generation pipeline.
//
// Every component either returns a best-effort result plus an optional
// diagnostic, or surfaces one of the error categories defined here. Only
// structural errors are fatal to a report generation call; everything else
// is recovered locally by the component that detected it.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	// CategoryStructural marks fatal defects: the call cannot produce any
	// document (e.g. an empty dataset at assembly time).
	CategoryStructural ErrorCategory = "structural"
	// CategoryData marks degraded input recovered locally: a missing column,
	// a row-count mismatch, an uninterpretable value.
	CategoryData ErrorCategory = "data"
	// CategoryAsset marks icon/font resolution failures. These never reach
	// the output consumer beyond a visual fallback.
	CategoryAsset ErrorCategory = "asset"
	// CategoryFile marks filesystem problems reading the source spreadsheet.
	CategoryFile ErrorCategory = "file"
	// CategoryConfiguration marks invalid caller-supplied configuration.
	CategoryConfiguration ErrorCategory = "configuration"
	// CategoryInternal marks unexpected defects caught at component
	// boundaries and downgraded instead of escaping.
	CategoryInternal ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// Structural errors
	CodeEmptyDataset     ErrorCode = "empty_dataset"
	CodeMissingStructure ErrorCode = "missing_structure"

	// Data errors
	CodeNotTabular       ErrorCode = "not_tabular"
	CodeMissingColumn    ErrorCode = "missing_column"
	CodeRowCountMismatch ErrorCode = "row_count_mismatch"
	CodeInvalidData      ErrorCode = "invalid_data"
	CodeModeDowngraded   ErrorCode = "mode_downgraded"
	CodeSectionSkipped   ErrorCode = "section_skipped"

	// Asset errors
	CodeIconNotFound   ErrorCode = "icon_not_found"
	CodeIconUnreadable ErrorCode = "icon_unreadable"

	// File errors
	CodeFileNotFound  ErrorCode = "file_not_found"
	CodeFileCorrupted ErrorCode = "file_corrupted"
	CodeSheetNotFound ErrorCode = "sheet_not_found"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
	CodeRenderFailed    ErrorCode = "render_failed"
)

// ReportError is the base error type for all application errors
type ReportError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the error aborts the whole report generation call.
// Only structural and configuration defects are fatal; data and asset
// problems are recovered at component boundaries.
func (e *ReportError) IsFatal() bool {
	return e.Category == CategoryStructural || e.Category == CategoryConfiguration
}

// GetExitCode returns an appropriate exit code for the error
func (e *ReportError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryData:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryStructural:
		return 5
	case CategoryAsset, CategoryInternal:
		return 6
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *ReportError) WithContext(key string, value interface{}) *ReportError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ReportError) WithSuggestion(suggestion string) *ReportError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ReportError
func New(category ErrorCategory, code ErrorCode, message string) *ReportError {
	return &ReportError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ReportError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ReportError {
	if err == nil {
		return nil
	}

	return &ReportError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Specific error constructors

// StructuralError creates a fatal structural error
func StructuralError(code ErrorCode, detail string) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeEmptyDataset:
		message = "the dataset is empty, no report can be generated"
		suggestion = "verify the source spreadsheet contains at least one data row"
	case CodeMissingStructure:
		message = fmt.Sprintf("the dataset is missing expected structure: %s", detail)
		suggestion = "verify the source spreadsheet uses the expected column layout"
	default:
		message = fmt.Sprintf("structural defect: %s", detail)
		suggestion = "check the input data and try again"
	}

	return New(CategoryStructural, code, message).
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// DataError creates a degraded-input error. Callers recover from these
// locally (skip a section, downgrade a mode, truncate) and keep going.
func DataError(code ErrorCode, column string, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeNotTabular:
		message = "input cannot be interpreted as tabular data"
		suggestion = "check that the source has a header row and consistent columns"
	case CodeMissingColumn:
		message = fmt.Sprintf("required column '%s' is absent", column)
		suggestion = "the affected section is skipped; add the column to include it"
	case CodeRowCountMismatch:
		message = "complete and display views diverge in row count"
		suggestion = "both views were truncated to the shorter length"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data in column '%s'", column)
		suggestion = "non-parseable values are treated as zero"
	case CodeModeDowngraded:
		message = fmt.Sprintf("grouped mode downgraded to flat: column '%s' absent", column)
		suggestion = "add the unit column to restore per-unit grouping"
	default:
		message = fmt.Sprintf("data error in column '%s'", column)
		suggestion = "check the column values and format"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryData, code, message)
	} else {
		result = New(CategoryData, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("column", column)
}

// AssetError creates an icon/asset resolution error
func AssetError(code ErrorCode, name string, err error) *ReportError {
	var message string

	switch code {
	case CodeIconNotFound:
		message = fmt.Sprintf("icon '%s' could not be resolved", name)
	case CodeIconUnreadable:
		message = fmt.Sprintf("icon '%s' could not be decoded", name)
	default:
		message = fmt.Sprintf("asset error for '%s'", name)
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryAsset, code, message)
	} else {
		result = New(CategoryAsset, code, message)
	}

	return result.
		WithSuggestion("a text header is used in place of the icon").
		WithContext("asset", name)
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFileCorrupted:
		message = fmt.Sprintf("file could not be read as a spreadsheet: %s", path)
		suggestion = "verify the file is a valid .xlsx or delimited text file"
	case CodeSheetNotFound:
		message = fmt.Sprintf("no expected sheet found in: %s", path)
		suggestion = "the workbook should contain an OPERATIVOS sheet or day sheets 01-31"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, err error) *ReportError {
	var message string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s'", setting)
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration '%s'", setting)
	default:
		message = fmt.Sprintf("configuration error for '%s'", setting)
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, code, message)
	} else {
		result = New(CategoryConfiguration, code, message)
	}

	return result.
		WithSuggestion("check the configuration value and documentation").
		WithContext("setting", setting)
}

// InternalError creates an internal error from an unexpected failure caught
// at a component boundary.
func InternalError(err error, operation string) *ReportError {
	return Wrap(err, CategoryInternal, CodeUnexpectedError,
		fmt.Sprintf("unexpected error during %s", operation)).
		WithContext("operation", operation)
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Category == category
	}
	return false
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Code == code
	}
	return false
}

// AsReportError extracts a ReportError from an error chain
func AsReportError(err error) (*ReportError, bool) {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr, true
	}
	return nil, false
}

// GetCategory extracts the category from an error, or CategoryInternal if
// the error is not a ReportError.
func GetCategory(err error) ErrorCategory {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Category
	}
	return CategoryInternal
}

// FormatUserMessage produces the single terminal message shown to the user
// for a fatal error.
func FormatUserMessage(err error) string {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		return fmt.Sprintf("Error: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", reportErr.Message)
	if reportErr.Suggestion != "" {
		fmt.Fprintf(&b, "\n  → %s", reportErr.Suggestion)
	}
	return b.String()
}
