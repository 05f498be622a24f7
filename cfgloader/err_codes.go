package cfgloader

const (
	CodeInvalidEnvironment = "INVALID_ENVIRONMENT"
	CodeConfigNotFound     = "CONFIG_NOT_FOUND"
	CodeConfigUnreadable   = "CONFIG_UNREADABLE"
	CodeInvalidConfig      = "INVALID_CONFIG"
)
