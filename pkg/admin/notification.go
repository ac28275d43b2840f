package admin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// NotificationOptions is the option bag sent when creating a system
// notification. Keys are forwarded verbatim as request parameters.
type NotificationOptions map[string]any

// Optional notification keys that are dropped when present but empty, so the
// server treats them as unset instead of failing to parse them.
const (
	OptionEndDate     = "endDate"
	OptionExternalURL = "externalUrl"
)

// SystemNotificationCreate creates a system notification shown to every user.
// opts is not modified.
func (c *Client) SystemNotificationCreate(ctx context.Context, opts NotificationOptions) (Object, error) {
	return c.sendObject(ctx, "POST", "/notification/system",
		transport.Params(stripEmptyOptional(opts)))
}

// SystemNotificationDelete deletes the system notification with the given id.
func (c *Client) SystemNotificationDelete(ctx context.Context, notificationID string) (Object, error) {
	return c.sendObject(ctx, "DELETE", "/notification/system", transport.Params{
		"notificationId": notificationID,
	})
}

// stripEmptyOptional returns a copy of opts without endDate and externalUrl
// when those keys hold a falsy value.
func stripEmptyOptional(opts NotificationOptions) NotificationOptions {
	out := make(NotificationOptions, len(opts))
	for k, v := range opts {
		out[k] = v
	}

	for _, key := range []string{OptionEndDate, OptionExternalURL} {
		if v, ok := out[key]; ok && falsy(v) {
			delete(out, key)
		}
	}

	return out
}

// falsy reports whether v is nil, an empty string, false, a numeric zero (or
// NaN), a zero time or a nil pointer.
func falsy(v any) bool {
	if v == nil {
		return true
	}

	switch vv := v.(type) {
	case string:
		return vv == ""
	case bool:
		return !vv
	case time.Time:
		return vv.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}

	return false
}

// Severity of a system notification.
type Severity string

const (
	SeverityInformational Severity = "INFORMATIONAL"
	SeverityWarning       Severity = "WARNING"
	SeverityCritical      Severity = "CRITICAL"
)

// Severities lists the severities accepted by the server.
var Severities = []Severity{SeverityInformational, SeverityWarning, SeverityCritical}

// DateFormat is the layout the server parses notification dates with.
const DateFormat = "2006-01-02 15:04 UTC"

// SystemNotification is a typed builder for NotificationOptions.
type SystemNotification struct {
	Severity    Severity
	Title       string
	Message     string
	StartDate   time.Time
	EndDate     time.Time
	ExternalURL string
}

// notificationFields is the wire form of a SystemNotification.
type notificationFields struct {
	Severity    string `mapstructure:"severity"`
	Title       string `mapstructure:"title"`
	Message     string `mapstructure:"message"`
	StartDate   string `mapstructure:"startDate"`
	EndDate     string `mapstructure:"endDate"`
	ExternalURL string `mapstructure:"externalUrl"`
}

// Validate checks the notification before it is sent.
func (n SystemNotification) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Severity,
			validation.Required,
			validation.In(SeverityInformational, SeverityWarning, SeverityCritical)),
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Message, validation.Required),
		validation.Field(&n.StartDate, validation.Required),
		validation.Field(&n.EndDate, validation.By(endAfter(n.StartDate))),
		validation.Field(&n.ExternalURL, validation.By(absoluteHTTPURL)),
	)
}

// Options validates the notification and converts it to NotificationOptions.
// An unset end date or external URL is left as an empty value, which
// SystemNotificationCreate drops.
func (n SystemNotification) Options() (NotificationOptions, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	fields := notificationFields{
		Severity:    string(n.Severity),
		Title:       n.Title,
		Message:     n.Message,
		StartDate:   formatDate(n.StartDate),
		EndDate:     formatDate(n.EndDate),
		ExternalURL: n.ExternalURL,
	}

	out := map[string]interface{}{}
	if err := mapstructure.Decode(fields, &out); err != nil {
		return nil, fmt.Errorf("error converting notification to options: %w", err)
	}

	return NotificationOptions(out), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateFormat)
}

func endAfter(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(time.Time)
		if end.IsZero() || start.IsZero() {
			return nil
		}
		if !end.After(start) {
			return errors.New("must be after the start date")
		}
		return nil
	}
}

func absoluteHTTPURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
}
