package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
)

// Body is a request payload. The only implementations are JSON and *Form.
type Body interface {
	encode() (io.Reader, string, error)
}

type jsonBody struct {
	v any
}

// JSON sends v as an application/json body.
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (b jsonBody) encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// File is an attachment carried by a Form.
type File struct {
	Name    string
	Content io.Reader
}

type formField struct {
	name  string
	value any
	file  *File
}

// Form is an ordered set of optional fields. Setters skip nil and blank
// values so that an empty form changes nothing on the server.
type Form struct {
	fields []formField
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) set(field formField) {
	for i := range f.fields {
		if f.fields[i].name == field.name {
			f.fields[i] = field
			return
		}
	}
	f.fields = append(f.fields, field)
}

// String sets name when v is non-nil and not blank.
func (f *Form) String(name string, v *string) *Form {
	if v == nil || strings.TrimSpace(*v) == "" {
		return f
	}
	f.set(formField{name: name, value: *v})
	return f
}

// Value sets name unconditionally unless v is blank.
func (f *Form) Value(name, v string) *Form {
	return f.String(name, &v)
}

// Bool sets name when v is non-nil. False is a real value here.
func (f *Form) Bool(name string, v *bool) *Form {
	if v == nil {
		return f
	}
	f.set(formField{name: name, value: *v})
	return f
}

// File attaches file under name. A nil file is ignored.
func (f *Form) File(name string, file *File) *Form {
	if file == nil || file.Content == nil {
		return f
	}
	f.set(formField{name: name, file: file})
	return f
}

func (f *Form) Len() int {
	return len(f.fields)
}

// Get returns the textual value of a non-file field.
func (f *Form) Get(name string) (string, bool) {
	for _, fl := range f.fields {
		if fl.name == name && fl.file == nil {
			return textValue(fl.value), true
		}
	}
	return "", false
}

func (f *Form) Names() []string {
	names := make([]string, 0, len(f.fields))
	for _, fl := range f.fields {
		names = append(names, fl.name)
	}
	return names
}

func (f *Form) HasFiles() bool {
	for _, fl := range f.fields {
		if fl.file != nil {
			return true
		}
	}
	return false
}

// NormalizeURLs rewrites the named string fields through NormalizeURL. The
// first invalid field aborts with its *ValidationError.
func (f *Form) NormalizeURLs(names ...string) error {
	for _, name := range names {
		for i := range f.fields {
			fl := &f.fields[i]
			if fl.name != name || fl.file != nil {
				continue
			}
			s, ok := fl.value.(string)
			if !ok {
				continue
			}
			u, err := NormalizeURL(name, s)
			if err != nil {
				return err
			}
			fl.value = u
		}
	}
	return nil
}

func (f *Form) encode() (io.Reader, string, error) {
	if f.HasFiles() {
		return f.encodeMultipart()
	}
	obj := make(map[string]any, len(f.fields))
	for _, fl := range f.fields {
		obj[fl.name] = fl.value
	}
	return jsonBody{v: obj}.encode()
}

func (f *Form) encodeMultipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fl := range f.fields {
		if fl.file == nil {
			if err := w.WriteField(fl.name, textValue(fl.value)); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", fl.name, err)
			}
			continue
		}
		part, err := w.CreateFormFile(fl.name, fl.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", fl.name, err)
		}
		if _, err := io.Copy(part, fl.file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", fl.file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func textValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
