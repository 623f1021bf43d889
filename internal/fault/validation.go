package fault

import "fmt"

// FieldError es un fallo de validación a nivel campo. Se acumulan todos
// los campos inválidos de un request y se devuelven como un solo error.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

// String sigue el formato "<field> value '<value>' <message>".
func (f FieldError) String() string {
	return fmt.Sprintf("%s value '%v' %s", f.Field, f.Value, f.Message)
}

// Messages aplana la lista para el body de error.
func Messages(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.String())
	}
	return out
}
