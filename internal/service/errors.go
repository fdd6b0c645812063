package service

import "errors"

// Tagged error kinds returned by domain operations. The handler boundary maps
// each kind to an HTTP status; domain logic stays transport-agnostic.
var (
	// ErrNotFound: the referenced resource does not exist.
	ErrNotFound = errors.New("Recurso no encontrado")
	// ErrForbidden: role or ownership mismatch.
	ErrForbidden = errors.New("No tienes permisos para realizar esta acción")
	// ErrConflict: duplicate username or email.
	ErrConflict = errors.New("El usuario o email ya están registrados")
	// ErrInvalidCredentials: bad email/password pair or inactive account.
	// Deliberately indistinguishable from the outside.
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	// ErrSelfModification: an admin tried to demote, deactivate or delete
	// their own account through the privileged endpoints.
	ErrSelfModification = errors.New("No puedes modificar tu propia cuenta")
)

// Error pairs a kind with a client-facing message. errors.Is against the
// sentinel still matches through Unwrap, so the boundary keeps a single
// kind-to-status table while messages stay operation-specific.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// E tags msg with one of the sentinel kinds above.
func E(kind error, msg string) error { return &Error{kind: kind, msg: msg} }
