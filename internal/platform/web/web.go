// Package web junta los helpers HTTP que antes se duplicaban en cada módulo
// (writeJSON, cuerpo de error, lectura de formularios).
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// ErrorBody es la forma estándar de las respuestas de error.
// Messages lleva los mensajes por campo; FormData devuelve lo enviado
// para que el cliente pueda re-pintar el formulario.
type ErrorBody struct {
	Error    string            `json:"error"`
	Messages []string          `json:"messages,omitempty"`
	FormData map[string]string `json:"form_data,omitempty"`
}

// MessageBody es la respuesta de éxito "flash + redirect".
type MessageBody struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// WriteFormError responde con los mensajes de validación y los valores enviados.
func WriteFormError(w http.ResponseWriter, status int, msg string, messages []string, form url.Values, omit ...string) {
	WriteJSON(w, status, ErrorBody{
		Error:    msg,
		Messages: messages,
		FormData: Flatten(form, omit...),
	})
}

// ReadForm acepta application/json o form-encoded y devuelve url.Values.
// En JSON, los arrays se expanden a valores múltiples y los escalares se pasan a string.
func ReadForm(r *http.Request) (url.Values, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
		return r.PostForm, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return url.Values{}, nil
		}
		return nil, errors.New("invalid json")
	}

	out := url.Values{}
	for k, v := range raw {
		switch tv := v.(type) {
		case []any:
			for _, item := range tv {
				out.Add(k, scalar(item))
			}
		case nil:
			out.Set(k, "")
		default:
			out.Set(k, scalar(tv))
		}
	}
	return out, nil
}

// Values devuelve todos los valores de key, aceptando también "key[]"
// (lo que mandan los formularios con checkboxes múltiples).
func Values(form url.Values, key string) []string {
	out := make([]string, 0, len(form[key])+len(form[key+"[]"]))
	out = append(out, form[key]...)
	out = append(out, form[key+"[]"]...)
	return out
}

// Flatten deja un valor por clave, omitiendo campos sensibles (passwords).
func Flatten(form url.Values, omit ...string) map[string]string {
	if len(form) == 0 {
		return nil
	}
	skip := map[string]struct{}{}
	for _, k := range omit {
		skip[k] = struct{}{}
	}
	out := make(map[string]string, len(form))
	for k, vs := range form {
		if _, ok := skip[k]; ok || len(vs) == 0 {
			continue
		}
		out[k] = vs[0]
	}
	return out
}

// LocalPath devuelve raw si es un path del propio sitio ("/x"); si no, "".
// Rechaza "//host" y "/\\host", que los navegadores tratan como URL de otro origen.
func LocalPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	if strings.ContainsAny(raw, "\\\r\n\t") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return raw
}

func scalar(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case json.Number:
		return tv.String()
	case bool:
		return strconv.FormatBool(tv)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(tv)
		return strings.Trim(string(b), `"`)
	}
}
