package errors

// ErrorCode identifies an application error independent of its HTTP status
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND

	// Missing required input (caller errors)
	ErrorCode_NO_AUDIO_DATA
	ErrorCode_NO_VIDEO_DATA
	ErrorCode_EMPTY_TRANSCRIPT

	// Modality extraction (recoverable, modality degrades to absent)
	ErrorCode_AUDIO_EXTRACTION_FAILED
	ErrorCode_VISUAL_EXTRACTION_FAILED
	ErrorCode_REKOGNITION_NO_FACES

	// Text understanding
	ErrorCode_TEXT_ANALYSIS_FAILED

	// Fusion layer (never recoverable)
	ErrorCode_NO_VALID_MODALITIES
	ErrorCode_FUSION_FAILED

	// Integrations
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_CACHE_FAILED
	ErrorCode_EXTERNAL_API_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_NO_AUDIO_DATA:            "NO_AUDIO_DATA",
	ErrorCode_NO_VIDEO_DATA:            "NO_VIDEO_DATA",
	ErrorCode_EMPTY_TRANSCRIPT:         "EMPTY_TRANSCRIPT",
	ErrorCode_AUDIO_EXTRACTION_FAILED:  "AUDIO_EXTRACTION_FAILED",
	ErrorCode_VISUAL_EXTRACTION_FAILED: "VISUAL_EXTRACTION_FAILED",
	ErrorCode_REKOGNITION_NO_FACES:     "REKOGNITION_NO_FACES",
	ErrorCode_TEXT_ANALYSIS_FAILED:     "TEXT_ANALYSIS_FAILED",
	ErrorCode_NO_VALID_MODALITIES:      "NO_VALID_MODALITIES",
	ErrorCode_FUSION_FAILED:            "FUSION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_CACHE_FAILED:             "CACHE_FAILED",
	ErrorCode_EXTERNAL_API_FAILED:      "EXTERNAL_API_FAILED",
}

// String returns the wire name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
