package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"
)

// AppError is the application error type carried across layers
type AppError struct {
	Raw         error
	HTTPCode    int
	Code        ErrorCode
	Message     string
	Details     map[string]string
	Recoverable bool
	Timestamp   time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// CodeOf returns the code of the first AppError in the chain, or INTERNAL
func CodeOf(err error) ErrorCode {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCode_INTERNAL
}

// IsRecoverable reports whether the failure only degrades one modality
func IsRecoverable(err error) bool {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

func newAppError(raw error, status int, code ErrorCode, message string, recoverable bool) AppError {
	return AppError{
		Raw:         raw,
		HTTPCode:    status,
		Code:        code,
		Message:     message,
		Recoverable: recoverable,
		Timestamp:   time.Now().UTC(),
	}
}

// General Errors
func ErrInternal(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error", false)
}

func ErrInvalidArgument(message string) AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT, message, false)
}

func ErrInvalidPayload(err error) AppError {
	return newAppError(err, http.StatusBadRequest, ErrorCode_INVALID_PAYLOAD, "Invalid payload", false)
}

func ErrNotFound(resource string) AppError {
	return newAppError(nil, http.StatusNotFound, ErrorCode_NOT_FOUND, fmt.Sprintf("%s not found", resource), false)
}

// Input Errors
func ErrNoAudioData() AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_NO_AUDIO_DATA, "No audio data in captured media", false)
}

func ErrNoVideoData() AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_NO_VIDEO_DATA, "No video frames in captured media", false)
}

func ErrEmptyTranscript() AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_EMPTY_TRANSCRIPT, "Transcript is empty", false)
}

// Extraction Errors
func ErrAudioExtractionFailed(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_AUDIO_EXTRACTION_FAILED, "Audio feature extraction failed", true)
}

func ErrVisualExtractionFailed(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_VISUAL_EXTRACTION_FAILED, "Visual feature extraction failed", true)
}

func ErrRekognitionNoFaces(framesSent int) AppError {
	return newAppError(nil, http.StatusUnprocessableEntity, ErrorCode_REKOGNITION_NO_FACES, "No faces detected in sampled frames", true).
		WithDetail("frames_sent", fmt.Sprintf("%d", framesSent))
}

func ErrTextAnalysisFailed(err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_TEXT_ANALYSIS_FAILED, "Text analysis failed", true)
}

// Fusion Errors
func ErrNoValidModalities() AppError {
	return newAppError(nil, http.StatusUnprocessableEntity, ErrorCode_NO_VALID_MODALITIES, "No modality produced a usable score", false)
}

func ErrFusionFailed(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_FUSION_FAILED, "Fusion failed", false)
}

// Integration Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_DB_QUERY_FAILED, "Database query failed", false).
		WithDetail("query", query)
}

func ErrCacheFailed(operation string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_CACHE_FAILED, fmt.Sprintf("Cache operation failed: %s", operation), false)
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_EXTERNAL_API_FAILED, fmt.Sprintf("External API call failed: %s", service), false)
}
