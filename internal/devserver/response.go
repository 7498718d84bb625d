package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/nhle/todolists/internal/api"
)

type envelope struct {
	Data         any            `json:"data"`
	Messages     []string       `json:"messages"`
	FieldsErrors []string       `json:"fieldsErrors"`
	ResultCode   api.ResultCode `json:"resultCode"`
}

type messageBody struct {
	Message string `json:"message"`
}

type item struct {
	Item any `json:"item"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeOK answers with a successful envelope.
func writeOK(w http.ResponseWriter, data any) {
	if data == nil {
		data = struct{}{}
	}
	writeJSON(w, http.StatusOK, envelope{
		Data:         data,
		Messages:     []string{},
		FieldsErrors: []string{},
	})
}

// writeResult answers HTTP 200 with an application-level failure.
func writeResult(w http.ResponseWriter, code api.ResultCode, messages ...string) {
	writeJSON(w, http.StatusOK, envelope{
		Data:         struct{}{},
		Messages:     messages,
		FieldsErrors: []string{},
		ResultCode:   code,
	})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageBody{Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
