package errors

var (
	// Domain errors — used in usecase/repository
	ErrUserNotFound       = NotFound("user not found")
	ErrMessageNotFound    = NotFound("message not found")
	ErrChannelNotFound    = NotFound("channel not found")
	ErrEmailTaken         = AlreadyExists("email is already registered")
	ErrChannelNameTaken   = AlreadyExists("channel name is already taken")
	ErrInsufficientFunds  = FailedPrecondition("insufficient balance")
	ErrInvalidAmount      = InvalidArg("amount must be a positive number")
	ErrMissingContent     = InvalidArg("message content is required")
	ErrMissingChannelName = InvalidArg("channel name is required")
	ErrNegativeLockPrice  = InvalidArg("lock price cannot be negative")
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrAccountDisabled    = Forbidden("account is disabled")
	ErrAdminOnly          = Forbidden("admin role required")
)

func ErrUnlockFailed(cause error) error {
	return Wrap(CodeUnavailable, "unlock failed", cause)
}

func ErrStorageUnavailable(cause error) error {
	return Wrap(CodeUnavailable, "storage unavailable", cause)
}
