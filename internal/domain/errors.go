package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInsufficientRole     = errors.New("insufficient role for this action")
	ErrValidation           = errors.New("required field missing or invalid")
	ErrFormat               = errors.New("unparseable input format")
	ErrInvalidTransition    = errors.New("invalid archive status transition")
	ErrInvalidBracketTable  = errors.New("bracket table is not contiguous and ordered")
	ErrEnterpriseInactive   = errors.New("enterprise is inactive")
	ErrUserInactive         = errors.New("user is inactive")
	ErrDiscordTokenInvalid  = errors.New("discord authorization code or token is invalid")
	ErrNotEnterpriseMember  = errors.New("user has no role in this enterprise")
	ErrUnsupportedFileType  = errors.New("unsupported document type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrLaunderingDisabled   = errors.New("laundering module is disabled for this enterprise")
)
