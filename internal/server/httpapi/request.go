package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

// maxBodySize bounds any request body: one upload plus form fields.
const maxBodySize = services.MaxUploadSize + 1<<20

var errMalformedBody = errors.New("malformed request body")

// form is a decoded JSON or multipart body. A field that is present with a
// JSON null is stored as the empty string.
type form struct {
	values map[string]string
	files  map[string]*services.Upload
}

func (f *form) has(name string) bool {
	_, ok := f.values[name]
	if !ok {
		_, ok = f.files[name]
	}
	return ok
}

// str returns the field value or nil when the field is absent.
func (f *form) str(name string) *string {
	v, ok := f.values[name]
	if !ok {
		return nil
	}
	return &v
}

func (f *form) value(name string) string {
	return f.values[name]
}

// boolean parses an optional boolean field, recording bad values in fe.
func (f *form) boolean(name string, fe common.FieldErrors) *bool {
	v, ok := f.values[name]
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fe.Add(name, "Must be a valid boolean.")
		return nil
	}
	return &b
}

func (f *form) file(name string) *services.Upload {
	return f.files[name]
}

// parseForm reads a JSON object or a multipart form. An empty body is an
// empty form.
func parseForm(w http.ResponseWriter, r *http.Request) (*form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	f := &form{values: map[string]string{}, files: map[string]*services.Upload{}}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data":
		return f, f.readMultipart(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		for k, vs := range r.PostForm {
			f.values[k] = vs[0]
		}
		return f, nil
	default:
		return f, f.readJSON(r.Body)
	}
}

func (f *form) readJSON(body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	for k, v := range raw {
		f.values[k] = jsonText(v)
	}
	return nil
}

// jsonText flattens a JSON scalar to the text a form field would carry.
func jsonText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if string(v) == "null" {
		return ""
	}
	return string(v)
}

func (f *form) readMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxBodySize); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	for k, vs := range r.MultipartForm.Value {
		f.values[k] = vs[0]
	}
	for k, hs := range r.MultipartForm.File {
		if len(hs) == 0 {
			continue
		}
		fh, err := hs[0].Open()
		if err != nil {
			return fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		data, err := io.ReadAll(io.LimitReader(fh, services.MaxUploadSize+1))
		fh.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		f.files[k] = &services.Upload{Filename: hs[0].Filename, Data: data}
	}
	return nil
}
