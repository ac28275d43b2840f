package notification

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
)

func newBase(ui cli.Ui, baseURL string) *base.Command {
	return &base.Command{
		Log: hclog.NewNullLogger(),
		UI:  ui,
		Fs:  afero.NewMemMapFs(),
		LookupEnv: func(k string) (string, bool) {
			if k == "OPENLUMIFY_BASE_URL" {
				return baseURL, true
			}
			return "", false
		},
	}
}

func TestCreateCommand(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notification/system", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"n-123"}`))
	}))
	defer srv.Close()

	fixed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &CreateCommand{
			Command: newBase(ui, srv.URL),
			now:     func() time.Time { return fixed },
		}

		code := c.Run([]string{"-title", "Maintenance", "-message", "Down at noon"})
		require.Equal(t, 0, code, ui.ErrorWriter.String())

		assert.Equal(t, "INFORMATIONAL", form.Get("severity"))
		assert.Equal(t, "Maintenance", form.Get("title"))
		assert.Equal(t, "Down at noon", form.Get("message"))
		assert.Equal(t, "2026-10-16 09:30 UTC", form.Get("startDate"))
		assert.NotContains(t, form, "endDate")
		assert.NotContains(t, form, "externalUrl")
		assert.Contains(t, ui.OutputWriter.String(), `Created system notification "n-123"`)
	})

	t.Run("all fields", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &CreateCommand{
			Command: newBase(ui, srv.URL),
			now:     func() time.Time { return fixed },
		}

		code := c.Run([]string{
			"-severity", "critical",
			"-title", "Outage",
			"-message", "Search is down",
			"-start", "2026-10-20T16:00:00Z",
			"-end", "2026-10-20T18:00:00Z",
			"-external-url", "https://status.example.com",
		})
		require.Equal(t, 0, code, ui.ErrorWriter.String())

		assert.Equal(t, "CRITICAL", form.Get("severity"))
		assert.Equal(t, "2026-10-20 16:00 UTC", form.Get("startDate"))
		assert.Equal(t, "2026-10-20 18:00 UTC", form.Get("endDate"))
		assert.Equal(t, "https://status.example.com", form.Get("externalUrl"))
	})
}

func TestCreateCommand_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing title", []string{"-message", "m"}, "invalid notification"},
		{"bad severity", []string{"-severity", "loud", "-title", "t", "-message", "m"}, "invalid notification"},
		{"bad start", []string{"-title", "t", "-message", "m", "-start", "not a date"}, "error parsing start date"},
		{"bad end", []string{"-title", "t", "-message", "m", "-end", "not a date"}, "error parsing end date"},
		{
			"end before start",
			[]string{"-title", "t", "-message", "m", "-start", "2026-10-20T16:00:00Z", "-end", "2026-10-19T16:00:00Z"},
			"must be after the start date",
		},
		{"relative url", []string{"-title", "t", "-message", "m", "-external-url", "/status"}, "absolute http or https URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := cli.NewMockUi()
			c := &CreateCommand{Command: newBase(ui, "http://localhost:1")}

			assert.Equal(t, 1, c.Run(tt.args))
			assert.Contains(t, ui.ErrorWriter.String(), tt.want)
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	var gotMethod, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotID = r.URL.Query().Get("notificationId")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	ui := cli.NewMockUi()
	c := &DeleteCommand{Command: newBase(ui, srv.URL)}

	require.Equal(t, 0, c.Run([]string{"n-123"}), ui.ErrorWriter.String())
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "n-123", gotID)
	assert.Contains(t, ui.OutputWriter.String(), `Deleted system notification "n-123"`)

	ui = cli.NewMockUi()
	c = &DeleteCommand{Command: newBase(ui, srv.URL)}
	assert.Equal(t, 1, c.Run(nil))
	assert.Contains(t, ui.ErrorWriter.String(), "exactly one notification id is required")
}
