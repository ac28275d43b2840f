package admin

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

func TestSystemNotificationCreate_StripsEmptyOptional(t *testing.T) {
	tests := []struct {
		name    string
		opts    NotificationOptions
		want    transport.Params
		missing []string
	}{
		{
			name: "empty strings",
			opts: NotificationOptions{
				"title":       "Maintenance",
				"endDate":     "",
				"externalUrl": "",
			},
			want:    transport.Params{"title": "Maintenance"},
			missing: []string{"endDate", "externalUrl"},
		},
		{
			name: "nil values",
			opts: NotificationOptions{
				"title":       "Maintenance",
				"endDate":     nil,
				"externalUrl": nil,
			},
			want:    transport.Params{"title": "Maintenance"},
			missing: []string{"endDate", "externalUrl"},
		},
		{
			name: "keys absent",
			opts: NotificationOptions{
				"title": "Maintenance",
			},
			want:    transport.Params{"title": "Maintenance"},
			missing: []string{"endDate", "externalUrl"},
		},
		{
			name: "truthy values preserved",
			opts: NotificationOptions{
				"title":       "Maintenance",
				"endDate":     "2026-10-20 18:00 UTC",
				"externalUrl": "https://status.example.com",
			},
			want: transport.Params{
				"title":       "Maintenance",
				"endDate":     "2026-10-20 18:00 UTC",
				"externalUrl": "https://status.example.com",
			},
		},
		{
			name: "only one falsy",
			opts: NotificationOptions{
				"endDate":     "2026-10-20 18:00 UTC",
				"externalUrl": "",
			},
			want:    transport.Params{"endDate": "2026-10-20 18:00 UTC"},
			missing: []string{"externalUrl"},
		},
		{
			name: "other empty keys untouched",
			opts: NotificationOptions{
				"message": "",
				"endDate": false,
			},
			want:    transport.Params{"message": ""},
			missing: []string{"endDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rr := newTestClient()

			_, err := c.SystemNotificationCreate(context.Background(), tt.opts)
			require.NoError(t, err)

			req := rr.only(t)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "/notification/system", req.Path)

			payload, ok := req.Payload.(transport.Params)
			require.True(t, ok)
			assert.Equal(t, tt.want, payload)
			for _, k := range tt.missing {
				assert.NotContains(t, payload, k)
			}
		})
	}
}

func TestSystemNotificationCreate_DoesNotMutateOptions(t *testing.T) {
	c, _ := newTestClient()

	opts := NotificationOptions{"title": "t", "endDate": ""}
	_, err := c.SystemNotificationCreate(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, opts, "endDate")
}

func TestSystemNotificationCreate_NilOptions(t *testing.T) {
	c, rr := newTestClient()

	_, err := c.SystemNotificationCreate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, transport.Params{}, rr.only(t).Payload)
}

func TestFalsy(t *testing.T) {
	var nilTime *time.Time
	now := time.Now()

	assert.True(t, falsy(nil))
	assert.True(t, falsy(""))
	assert.True(t, falsy(false))
	assert.True(t, falsy(0))
	assert.True(t, falsy(int64(0)))
	assert.True(t, falsy(0.0))
	assert.True(t, falsy(math.NaN()))
	assert.True(t, falsy(time.Time{}))
	assert.True(t, falsy(nilTime))

	assert.False(t, falsy("x"))
	assert.False(t, falsy(true))
	assert.False(t, falsy(1))
	assert.False(t, falsy(now))
	assert.False(t, falsy(&now))
	assert.False(t, falsy(struct{}{}))
}

func TestSystemNotification_Validate(t *testing.T) {
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)

	valid := SystemNotification{
		Severity:  SeverityWarning,
		Title:     "Maintenance",
		Message:   "The system will be down",
		StartDate: start,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(n *SystemNotification)
	}{
		{name: "missing title", modify: func(n *SystemNotification) { n.Title = "" }},
		{name: "missing message", modify: func(n *SystemNotification) { n.Message = "" }},
		{name: "missing start", modify: func(n *SystemNotification) { n.StartDate = time.Time{} }},
		{name: "unknown severity", modify: func(n *SystemNotification) { n.Severity = "LOUD" }},
		{name: "end before start", modify: func(n *SystemNotification) { n.EndDate = start.Add(-time.Hour) }},
		{name: "relative url", modify: func(n *SystemNotification) { n.ExternalURL = "/status" }},
		{name: "bad scheme", modify: func(n *SystemNotification) { n.ExternalURL = "ftp://status.example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.modify(&n)
			assert.Error(t, n.Validate())
		})
	}
}

func TestSystemNotification_Options(t *testing.T) {
	n := SystemNotification{
		Severity:  SeverityCritical,
		Title:     "Outage",
		Message:   "Investigating",
		StartDate: time.Date(2026, 10, 20, 16, 30, 0, 0, time.UTC),
	}

	opts, err := n.Options()
	require.NoError(t, err)

	assert.Equal(t, "CRITICAL", opts["severity"])
	assert.Equal(t, "Outage", opts["title"])
	assert.Equal(t, "Investigating", opts["message"])
	assert.Equal(t, "2026-10-20 16:30 UTC", opts["startDate"])
	assert.Equal(t, "", opts[OptionEndDate])
	assert.Equal(t, "", opts[OptionExternalURL])

	_, err = SystemNotification{}.Options()
	assert.Error(t, err)
}

func TestSystemNotificationCreate_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notification/system", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "WARNING", r.PostForm.Get("severity"))
		assert.Equal(t, "2026-10-20 16:00 UTC", r.PostForm.Get("startDate"))
		assert.Equal(t, "https://status.example.com", r.PostForm.Get("externalUrl"))
		_, hasEnd := r.PostForm["endDate"]
		assert.False(t, hasEnd)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"n-42","title":"Maintenance"}`))
	}))
	defer server.Close()

	tc, err := transport.NewClient(transport.Config{
		BaseURL: server.URL,
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	c := NewClient(tc, hclog.NewNullLogger())

	opts, err := SystemNotification{
		Severity:    SeverityWarning,
		Title:       "Maintenance",
		Message:     "Down for upgrades",
		StartDate:   time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC),
		ExternalURL: "https://status.example.com",
	}.Options()
	require.NoError(t, err)

	obj, err := c.SystemNotificationCreate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "n-42", obj["id"])
}
