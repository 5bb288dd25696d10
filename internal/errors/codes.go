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
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidLEDCount ErrorCode = "invalid_led_count"
	ErrInvalidColor    ErrorCode = "invalid_color"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Sampling errors
	ErrReadSample      ErrorCode = "read_sample_failed"
	ErrMalformedSample ErrorCode = "malformed_sample"

	// Encoding errors
	ErrInvalidPattern ErrorCode = "invalid_pattern"

	// Bus errors
	ErrSPIOpen     ErrorCode = "spi_open_failed"
	ErrSPITransmit ErrorCode = "spi_transmit_failed"
	ErrSPIClose    ErrorCode = "spi_close_failed"

	// Application errors
	ErrInitApp  ErrorCode = "init_app_failed"
	ErrMainLoop ErrorCode = "main_loop_failed"
	ErrNotify   ErrorCode = "systemd_notify_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read config file",
	ErrInvalidInterval: "Invalid interval value",
	ErrInvalidLEDCount: "Invalid LED count",
	ErrInvalidColor:    "Invalid color",
	ErrInvalidLogLevel: "Invalid log level",
	ErrReadSample:      "Failed to read CPU accounting source",
	ErrMalformedSample: "Malformed CPU accounting line",
	ErrInvalidPattern:  "Invalid waveform bit pattern",
	ErrSPIOpen:         "Failed to open SPI port",
	ErrSPITransmit:     "Failed to transmit frame",
	ErrSPIClose:        "Failed to close SPI port",
	ErrInitApp:         "Failed to initialize application",
	ErrMainLoop:        "Error in main loop",
	ErrNotify:          "Failed to notify service manager",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
