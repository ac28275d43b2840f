// Package transport sends requests to an OpenLumify web application.
//
// A Request pairs a method tag with a path and an optional payload:
//
//	req, err := transport.NewRequest("POST->HTML", "/admin/deleteEdge", transport.Params{
//		"edgeId":      edgeID,
//		"workspaceId": workspaceID,
//	})
//
// The tag names the HTTP method and, after "->", the expected response shape
// (JSON when omitted). Params travel in the query string for GET, HEAD and
// DELETE and as a form-urlencoded body otherwise; FormData is sent as
// multipart/form-data.
//
// Client is the Requester used in production. It resolves paths against a
// base URL, adds the CSRF and workspace headers the server expects, retries
// idempotent requests with exponential backoff and turns error statuses into
// *Error values. Authentication and tracing are configured on the
// *http.Client built by NewHTTPClient.
//
// Pending wraps a call running in its own goroutine for callers that want to
// issue several requests and collect the results later.
package transport
