package fault

import (
	"errors"
	"fmt"
)

// Kind clasifica los fallos de negocio que los services pueden devolver.
// El mapeo a HTTP vive en platform/httperr, no acá.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindConflict
	KindInvalidReference
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindInvalidReference:
		return "invalid_reference"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error es un fallo terminal del request actual: no se reintenta.
// Se construye fresco en cada ocurrencia (nunca valores compartidos,
// para que el mensaje y el trace correspondan al request que falló).
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) *Error {
	return New(KindInvalidArgument, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func InvalidReference(format string, args ...any) *Error {
	return New(KindInvalidReference, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// KindOf devuelve el Kind si err (o su cadena) es un *Error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindUnknown, false
}

// IsKind chequea kind puntual (para tests y handlers).
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
