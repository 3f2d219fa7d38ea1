package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidRate     ErrorCode = "invalid_rate"
	ErrInvalidStream   ErrorCode = "invalid_stream"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrTimeout        ErrorCode = "operation_timeout"

	// Encoding errors
	ErrSizeMismatch       ErrorCode = "size_mismatch"
	ErrIntegrityMismatch  ErrorCode = "integrity_mismatch"
	ErrInvalidDimensions  ErrorCode = "invalid_dimensions"
	ErrIndexOutOfRange    ErrorCode = "index_out_of_range"
	ErrUnsupportedMessage ErrorCode = "unsupported_message"

	// Dispatch errors
	ErrEncodeFailed  ErrorCode = "encode_failed"
	ErrPublishFailed ErrorCode = "publish_failed"

	// Wire errors
	ErrMarshalFailed   ErrorCode = "marshal_failed"
	ErrUnmarshalFailed ErrorCode = "unmarshal_failed"

	// Telemetry errors
	ErrInitTelemetry   ErrorCode = "init_telemetry_failed"
	ErrRecordTelemetry ErrorCode = "record_telemetry_failed"
	ErrCloseTelemetry  ErrorCode = "close_telemetry_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:           "Internal error occurred",
	ErrInvalidArgument:    "Invalid argument provided",
	ErrAlreadyRunning:     "Another instance is already running",
	ErrInvalidConfig:      "Invalid configuration",
	ErrBindFlags:          "Failed to bind flags",
	ErrReadConfig:         "Failed to read config file",
	ErrInvalidRate:        "Invalid frame rate",
	ErrInvalidStream:      "Unknown stream name",
	ErrInvalidLogLevel:    "Invalid log level",
	ErrInitFailed:         "Initialization failed",
	ErrShutdownFailed:     "Shutdown failed",
	ErrTimeout:            "Operation timed out",
	ErrSizeMismatch:       "Sample count does not match image dimensions",
	ErrIntegrityMismatch:  "Point and intensity data do not match",
	ErrInvalidDimensions:  "Invalid frame dimensions",
	ErrIndexOutOfRange:    "Point index out of range",
	ErrUnsupportedMessage: "Unsupported message type",
	ErrEncodeFailed:       "Failed to encode stream",
	ErrPublishFailed:      "Failed to publish stream",
	ErrMarshalFailed:      "Failed to serialize message",
	ErrUnmarshalFailed:    "Failed to deserialize message",
	ErrInitTelemetry:      "Failed to initialize telemetry",
	ErrRecordTelemetry:    "Failed to record telemetry",
	ErrCloseTelemetry:     "Failed to close telemetry",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
