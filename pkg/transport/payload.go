package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Payload is the body or query of a request. It is implemented by Params and
// *FormData.
type Payload interface {
	isPayload()
}

// Params are plain request parameters. They are sent as the query string for
// GET, HEAD and DELETE requests and as a form-urlencoded body otherwise.
type Params map[string]any

func (Params) isPayload() {}

// Values converts the parameters to url.Values. Nil values are skipped.
func (p Params) Values() (url.Values, error) {
	values := make(url.Values, len(p))

	// Sorted so encoding errors are reported deterministically.
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := p[k]
		if v == nil {
			continue
		}
		if ss, ok := v.([]string); ok {
			for _, s := range ss {
				values.Add(k, s)
			}
			continue
		}
		s, err := formatValue(v)
		if err != nil {
			return nil, fmt.Errorf("error encoding parameter %q: %w", k, err)
		}
		values.Set(k, s)
	}

	return values, nil
}

func formatValue(v any) (string, error) {
	switch vv := v.(type) {
	case string:
		return vv, nil
	case time.Time:
		return vv.UTC().Format(time.RFC3339), nil
	case *time.Time:
		if vv == nil {
			return "", nil
		}
		return vv.UTC().Format(time.RFC3339), nil
	case fmt.Stringer:
		return vv.String(), nil
	case bool:
		return strconv.FormatBool(vv), nil
	case int:
		return strconv.Itoa(vv), nil
	case int32:
		return strconv.FormatInt(int64(vv), 10), nil
	case int64:
		return strconv.FormatInt(vv, 10), nil
	case uint:
		return strconv.FormatUint(uint64(vv), 10), nil
	case uint64:
		return strconv.FormatUint(vv, 10), nil
	case float32:
		return strconv.FormatFloat(float64(vv), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported parameter type %T", v)
	}
}

// FormData is a multipart/form-data payload.
type FormData struct {
	fields []formField
}

type formField struct {
	name     string
	value    string
	filename string
	content  io.Reader
}

func (*FormData) isPayload() {}

// NewFormData returns an empty multipart payload.
func NewFormData() *FormData {
	return &FormData{}
}

// Set appends a plain text field.
func (f *FormData) Set(name, value string) *FormData {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file field. The reader is consumed when the request is
// encoded.
func (f *FormData) AddFile(name, filename string, r io.Reader) *FormData {
	if r == nil {
		r = bytes.NewReader(nil)
	}
	f.fields = append(f.fields, formField{name: name, filename: filename, content: r})
	return f
}

// encode writes the multipart body and returns it with its content type.
// The whole body is buffered so it can be replayed on retries.
func (f *FormData) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if field.content == nil {
			if err := w.WriteField(field.name, field.value); err != nil {
				return nil, "", fmt.Errorf("error writing form field %q: %w", field.name, err)
			}
			continue
		}

		part, err := w.CreateFormFile(field.name, field.filename)
		if err != nil {
			return nil, "", fmt.Errorf("error creating form file %q: %w", field.name, err)
		}
		if _, err := io.Copy(part, field.content); err != nil {
			return nil, "", fmt.Errorf("error copying form file %q: %w", field.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
