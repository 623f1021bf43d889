package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"person-pet-registry/internal/fault"
)

// Body es la forma del error que ve el cliente:
// status + reason phrase + lista de mensajes + trace + path + timestamp.
type Body struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Messages  []string  `json:"messages"`
	Timestamp time.Time `json:"timestamp"`
	Trace     string    `json:"trace"`
	Path      string    `json:"path"`
}

// Write arma y emite el body. El trace se pasa explícito para que
// siempre corresponda al fallo de ESTE request (nunca valores reusados).
func Write(w http.ResponseWriter, r *http.Request, status int, messages []string, trace string) {
	body := Body{
		Status:    status,
		Error:     http.StatusText(status),
		Messages:  messages,
		Timestamp: time.Now(),
		Trace:     trace,
		Path:      r.URL.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteFault mapea un error de dominio a su status HTTP.
// Errores fuera de la taxonomía terminan en 500 con mensaje genérico
// (no filtramos detalles de storage al cliente).
func WriteFault(w http.ResponseWriter, r *http.Request, err error) {
	var fe *fault.Error
	if !errors.As(err, &fe) {
		Write(w, r, http.StatusInternalServerError, []string{"internal error"}, err.Error())
		return
	}
	Write(w, r, StatusOf(fe.Kind), []string{fe.Message}, fe.Error())
}

// StatusOf traduce kind -> status.
func StatusOf(kind fault.Kind) int {
	switch kind {
	case fault.KindInvalidArgument, fault.KindInvalidReference:
		return http.StatusBadRequest
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
