package errors

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Status:  409,
		Message: "Insufficient funds on the balance sheet",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Status:  422,
		Message: "Amount must be positive",
	}
)
