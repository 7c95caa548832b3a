// Package resources implements the CRUD managers for projects, posts and
// users on top of apiclient.
//
// All three share one generic Resource type parameterised by the record
// type, the input type, and a Schema describing the endpoints.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
)

var ErrUnsupported = errors.New("operation not supported for this resource")

// API is the subset of *apiclient.Client resource managers use.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body apiclient.Body, out any) error
	Patch(ctx context.Context, path string, body apiclient.Body, out any) error
	Delete(ctx context.Context, path string) error
}

// Input renders a create/update payload. Unset optional fields must be
// left out of the form.
type Input interface {
	Form() *apiclient.Form
}

// Filter renders list query parameters. A nil Filter lists everything.
type Filter interface {
	Values() url.Values
}

// Schema describes the endpoints of one resource. Paths are relative to
// the API base URL and end with a slash.
type Schema struct {
	Name      string
	Path      string
	MinePath  string
	URLFields []string
}

type Resource[T any, In Input] struct {
	api    API
	schema Schema
}

func NewResource[T any, In Input](api API, schema Schema) *Resource[T, In] {
	return &Resource[T, In]{api: api, schema: schema}
}

func (r *Resource[T, In]) Schema() Schema {
	return r.schema
}

func (r *Resource[T, In]) itemPath(id int64) string {
	return r.schema.Path + strconv.FormatInt(id, 10) + "/"
}

func (r *Resource[T, In]) List(ctx context.Context, f Filter) ([]T, error) {
	var q url.Values
	if f != nil {
		q = f.Values()
	}
	return r.list(ctx, r.schema.Path, q)
}

func (r *Resource[T, In]) list(ctx context.Context, path string, q url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, path, q, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", apiclient.ErrDecode, r.schema.Name, err)
	}
	return items, nil
}

// decodeList accepts a bare JSON array or a paginated {"results": [...]}
// envelope.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	items := []T{}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return items, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var page struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, err
		}
		if page.Results != nil {
			items = page.Results
		}
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.api.Get(ctx, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMine lists the caller's own records.
func (r *Resource[T, In]) ListMine(ctx context.Context) ([]T, error) {
	if r.schema.MinePath == "" {
		return nil, ErrUnsupported
	}
	return r.list(ctx, r.schema.MinePath, nil)
}

func (r *Resource[T, In]) form(in In) (*apiclient.Form, error) {
	form := in.Form()
	if err := form.NormalizeURLs(r.schema.URLFields...); err != nil {
		return nil, err
	}
	return form, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	form, err := r.form(in)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.api.Post(ctx, r.schema.Path, form, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update sends a partial update; fields absent from in are left unchanged.
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	form, err := r.form(in)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.api.Patch(ctx, r.itemPath(id), form, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, r.itemPath(id))
}

// Values is a ready-made Filter over plain query parameters.
type Values url.Values

func (v Values) Values() url.Values {
	return url.Values(v)
}

func setIf(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}
