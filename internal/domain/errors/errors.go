package errors

import "errors"

var (
	ErrAlreadyInTeam    = errors.New("ALREADY_IN_TEAM")
	ErrTeamFull         = errors.New("TEAM_FULL")
	ErrTeamClosed       = errors.New("TEAM_CLOSED")
	ErrNotAMember       = errors.New("NOT_A_MEMBER")
	ErrForbidden        = errors.New("FORBIDDEN")
	ErrNoteTooLong      = errors.New("NOTE_TOO_LONG")
	ErrEmptyContent     = errors.New("EMPTY_CONTENT")
	ErrAlreadyFavorited = errors.New("ALREADY_FAVORITED")
	ErrNotFound         = errors.New("NOT_FOUND")
	ErrUnauthorized     = errors.New("UNAUTHORIZED")
	ErrInvalidInput     = errors.New("INVALID_INPUT")
	ErrStoreUnavailable = errors.New("STORE_UNAVAILABLE")
)

// DomainError представляет доменную ошибку с кодом и сообщением
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError создает новую доменную ошибку
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
