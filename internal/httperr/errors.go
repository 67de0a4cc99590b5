package httperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindPersistence    Kind = "persistence"
)

// Error carrega o tipo da falha, um código estável e a mensagem exibida
// ao cliente.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func ErrAuthentication(code, message string) error {
	return &Error{Kind: KindAuthentication, Code: code, Message: message}
}

func ErrAuthorization(code, message string) error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func ErrValidation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// ErrPersistence embrulha uma falha de integridade do banco; a mensagem
// original segue para o cliente.
func ErrPersistence(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindPersistence, Code: "persistence_error", Message: err.Error(), Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
