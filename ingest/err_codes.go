package ingest

const (
	CodeNotAnImage      = "NOT_AN_IMAGE"
	CodeMissingURL      = "MISSING_PUBLIC_URL"
	CodeAnalysisOff     = "ANALYSIS_DISABLED"
	CodeMissingFilePath = "MISSING_FILE_PATH"
)
