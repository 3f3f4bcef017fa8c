package http

import "strings"

// Canonical lower-case header keys used by the request layer.
const (
	HeaderAuthorization = "authorization"
	HeaderContentType   = "content-type"
	HeaderAccept        = "accept"
	HeaderUserAgent     = "user-agent"
	HeaderTenant        = "li-api-tenant"

	contentTypeJSON = "application/json"
	contentTypeAny  = "*/*"

	// ContentTypeForm is the encoding the v1 endpoints take their POST
	// arguments in.
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BuildHeaders assembles the final header mapping for one request. It starts
// from the default set {authorization, content-type: application/json},
// overlays any caller-supplied headers case-insensitively (overwriting rather
// than duplicating), and removes content-type entirely for multipart requests
// so the transport encoder can supply the boundary. Keys are normalized to
// lower-case; values are passed through untouched so tokens are never
// corrupted.
func BuildHeaders(authValue string, extra map[string]string, multipart bool) map[string]string {
	headers := map[string]string{
		HeaderContentType: contentTypeJSON,
	}

	if authValue != "" {
		headers[HeaderAuthorization] = authValue
	}

	for key, value := range extra {
		headers[strings.ToLower(key)] = value
	}

	if multipart {
		delete(headers, HeaderContentType)
	}

	return headers
}
