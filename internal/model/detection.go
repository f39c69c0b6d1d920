package model

// Classification is the verdict returned for a clip
type Classification string

const (
	ClassificationAIGenerated Classification = "AI_GENERATED"
	ClassificationHuman       Classification = "HUMAN"
)

// Explanations attached to each verdict
const (
	ExplanationAIGenerated = "Consistent pitch transitions, smooth energy patterns, and " +
		"uniform pause structure indicate synthetic speech"
	ExplanationHuman = "Natural pitch fluctuations, spectral diversity, and " +
		"irregular pause patterns detected"
)

// StatusSuccess and StatusError are the values of the response "status" field
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Client-facing error messages
const (
	MessageInvalidRequest    = "Invalid API key or malformed request"
	MessageUnsupportedFormat = "Only MP3 format supported"
	MessageInvalidBase64     = "Invalid Base64 audio"
	MessageAnalysisFailed    = "Audio analysis failed"
	MessageAnalysisTimeout   = "Audio analysis timed out"
)

// VoiceDetectionRequest is the request body for POST /api/voice-detection
type VoiceDetectionRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

// VoiceDetectionResponse is returned after a successful analysis
type VoiceDetectionResponse struct {
	Status          string         `json:"status"`
	Language        string         `json:"language"`
	Classification  Classification `json:"classification"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Explanation     string         `json:"explanation"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ScoreResult is the outcome of scoring a FeatureSet
type ScoreResult struct {
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Explanation    string         `json:"explanation"`
	AIScore        int            `json:"aiScore"`
}

// Outcome is the counter bucket an analysis ends up in
type Outcome string

const (
	OutcomeAIGenerated Outcome = "AI_GENERATED"
	OutcomeHuman       Outcome = "HUMAN"
	OutcomeFailed      Outcome = "FAILED"
)

// VerdictStats are aggregate outcome counters
type VerdictStats struct {
	AIGenerated int64 `json:"aiGenerated"`
	Human       int64 `json:"human"`
	Failed      int64 `json:"failed"`
	Total       int64 `json:"total"`
}
