package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeInvalidJSON      = "invalid_json"

	// Method / routing errors
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Rate limiting
	ErrCodeRateLimited = "rate_limit_exceeded"

	// Upload / extraction errors
	ErrCodeFileTooLarge        = "file_too_large"
	ErrCodeUnsupportedFileType = "unsupported_file_type"
	ErrCodeExtractionFailed    = "extraction_failed"
	ErrCodeInsufficientText    = "insufficient_text"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeConfigurationError = "configuration_error"
	ErrCodeUpstreamError      = "upstream_error"

	// Export errors
	ErrCodeExportFailed = "export_failed"
)
