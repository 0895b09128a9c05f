package errors

var (
	// ErrNotAdmin deliberately answers 404 so the admin surface is not
	// discoverable by non-admin callers.
	ErrNotAdmin = &DomainError{
		Code:    "NOT_ADMIN",
		Status:  404,
		Message: "Not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Status:  404,
		Message: "Not found",
	}
	ErrSelfBlock = &DomainError{
		Code:    "SELF_BLOCK",
		Status:  409,
		Message: "Admin cannot block itself",
	}
	ErrAlreadyBlocked = &DomainError{
		Code:    "ALREADY_BLOCKED",
		Status:  409,
		Message: "User already blocked",
	}
	ErrNotBlocked = &DomainError{
		Code:    "NOT_BLOCKED",
		Status:  409,
		Message: "User not blocked",
	}
)
