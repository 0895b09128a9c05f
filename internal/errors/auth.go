package errors

var (
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Status:  401,
		Message: "Invalid user credentials",
	}
	ErrNotActive = &DomainError{
		Code:    "USER_NOT_ACTIVE",
		Status:  401,
		Message: "User is not active",
	}
	ErrBlocked = &DomainError{
		Code:    "USER_BLOCKED",
		Status:  403,
		Message: "Account is blocked",
	}
	ErrDuplicateEmail = &DomainError{
		Code:    "DUPLICATE_EMAIL",
		Status:  422,
		Message: "Email already exists",
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Status:  422,
		Message: "Invalid token",
	}
	ErrUnableDecodeToken = &DomainError{
		Code:    "UNDECODABLE_TOKEN",
		Status:  422,
		Message: "Unable to decode JWT",
	}
	ErrInvalidTokenType = &DomainError{
		Code:    "INVALID_TOKEN_TYPE",
		Status:  422,
		Message: "Invalid token type",
	}
	ErrInvalidTokenCredential = &DomainError{
		Code:    "INVALID_TOKEN_CREDENTIAL",
		Status:  403,
		Message: "Invalid token credentials",
	}
	ErrRevokedToken = &DomainError{
		Code:    "REVOKED_TOKEN",
		Status:  403,
		Message: "Token has been revoked",
	}
	ErrPasswordMismatch = &DomainError{
		Code:    "PASSWORD_MISMATCH",
		Status:  422,
		Message: "Password confirmation does not match",
	}
)
