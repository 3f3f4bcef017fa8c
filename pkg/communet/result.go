package communet

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// API status strings shared by both API generations.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NormalizedResult is the unified success/error/value contract returned to
// callers regardless of which API generation was invoked.
type NormalizedResult struct {
	// Status is "success" or "error".
	Status string

	// HTTPCode is the HTTP status code, always an integer even when the
	// platform reports it as a numeric string.
	HTTPCode int

	// Message and DeveloperMessage are only populated on the error path.
	Message          string
	DeveloperMessage string

	// Translate applies the known-error translation table when the error
	// message is rendered. Set from the session's TranslateErrors flag.
	Translate bool

	// Data is the parsed response payload on the success path.
	Data map[string]interface{}

	// Value holds the extracted v1 scalar ({"type": ..., "$": ...}) when the
	// response carried one.
	Value interface{}

	// ID, URL and APIURL are extracted from the payload when present, for
	// field projection.
	ID     string
	URL    string
	APIURL string

	// Raw is the transport-level response, returned unprocessed when a
	// caller requests FullResponse.
	Raw interface{}
}

// ReturnFields selects which values a caller wants back from an operation.
// Each field defaults to false; the zero value requests the plain boolean
// success indicator.
type ReturnFields struct {
	// FullResponse short-circuits all other flags and returns the raw
	// transport response unprocessed.
	FullResponse bool

	ReturnID            bool
	ReturnURL           bool
	ReturnAPIURL        bool
	ReturnHTTPCode      bool
	ReturnStatus        bool
	ReturnErrorMessages bool

	// SplitErrors returns message and developer_message as a pair instead of
	// a joined string.
	SplitErrors bool
}

// Succeeded reports whether the result represents a success. A result with
// no error status recorded is treated as a success.
func (r *NormalizedResult) Succeeded() bool {
	return r.Status != StatusError
}

// ErrorMessage renders the error message fields according to the
// consolidation rules: identical or one-sided pairs collapse to a single
// string, differing pairs are joined with " - ", and split=true returns both
// as a pair regardless of equality.
func (r *NormalizedResult) ErrorMessage(split bool) interface{} {
	message := r.Message
	developer := r.DeveloperMessage

	if r.Translate {
		message = TranslateErrorMessage(message)
		developer = TranslateErrorMessage(developer)
	}

	if split {
		return [2]string{message, developer}
	}

	return ConsolidateErrors(message, developer)
}

// Project assembles the requested return values. With zero flags set the
// result is a plain boolean success indicator; with exactly one flag set the
// bare value is returned; with two or more, an ordered slice in the fixed
// order id, url, api_url, http_code, status, error_message.
func (r *NormalizedResult) Project(fields ReturnFields) interface{} {
	if fields.FullResponse {
		if r.Raw != nil {
			return r.Raw
		}

		return r
	}

	// Fixed flag precedence order; callers cannot reorder it.
	ordered := []struct {
		requested bool
		value     interface{}
	}{
		{fields.ReturnID, r.ID},
		{fields.ReturnURL, r.URL},
		{fields.ReturnAPIURL, r.APIURL},
		{fields.ReturnHTTPCode, r.HTTPCode},
		{fields.ReturnStatus, r.Status},
		{fields.ReturnErrorMessages, r.ErrorMessage(fields.SplitErrors)},
	}

	values := make([]interface{}, 0, len(ordered))

	for _, field := range ordered {
		if field.requested {
			values = append(values, field.value)
		}
	}

	switch len(values) {
	case 0:
		return r.Succeeded()
	case 1:
		return values[0]
	default:
		return values
	}
}

// v2Envelope matches the native-JSON v2 response shape.
type v2Envelope struct {
	Status           string                 `json:"status"`
	Message          string                 `json:"message"`
	DeveloperMessage string                 `json:"developer_message"`
	HTTPCode         json.RawMessage        `json:"http_code"`
	Data             map[string]interface{} `json:"data"`
}

// ParseV2Response converts a v2 JSON body into a NormalizedResult.
// httpCode is the transport status code, used when the body does not carry
// its own. translate enables the known-error message translation table.
func ParseV2Response(body []byte, httpCode int, translate bool) (*NormalizedResult, error) {
	var envelope v2Envelope

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing v2 response: %w", err)
	}

	result := &NormalizedResult{
		Status:           envelope.Status,
		HTTPCode:         coerceHTTPCode(envelope.HTTPCode, httpCode),
		Message:          envelope.Message,
		DeveloperMessage: envelope.DeveloperMessage,
		Translate:        translate,
		Data:             envelope.Data,
	}

	extractResourceFields(result, envelope.Data)

	return result, nil
}

// coerceHTTPCode normalizes the body's http_code field, which the platform
// sometimes emits as a numeric string, to an int. fallback is the transport
// status code.
func coerceHTTPCode(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 {
		return fallback
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return asInt
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if parsed, convErr := strconv.Atoi(strings.TrimSpace(asString)); convErr == nil {
			return parsed
		}
	}

	return fallback
}

// extractResourceFields pulls the projectable id/url/api-url values out of a
// response payload when present. Single-resource payloads carry them at the
// top level; list payloads are left alone.
func extractResourceFields(result *NormalizedResult, data map[string]interface{}) {
	if data == nil {
		return
	}

	if id, ok := data["id"]; ok {
		result.ID = stringifyScalar(id)
	}

	if href, ok := data["view_href"].(string); ok {
		result.URL = href
	}

	if href, ok := data["href"].(string); ok {
		result.APIURL = href
	}
}

// stringifyScalar renders an id value that may arrive as a string or number.
func stringifyScalar(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// v1Envelope matches the XML-derived-JSON v1 response shape.
type v1Envelope struct {
	Response struct {
		Status string   `json:"status"`
		Value  *v1Value `json:"value"`
		Error  *v1Error `json:"error"`
	} `json:"response"`
}

type v1Value struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"$"`
}

type v1Error struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

// v1XMLEnvelope matches the raw XML v1 response shape, used when the caller
// opted out of JSON conversion.
type v1XMLEnvelope struct {
	XMLName xml.Name `xml:"response"`
	Status  string   `xml:"status,attr"`
	Value   *struct {
		Type string `xml:"type,attr"`
		Text string `xml:",chardata"`
	} `xml:"value"`
	Error *struct {
		Code    string `xml:"code,attr"`
		Message string `xml:"message"`
	} `xml:"error"`
}

// ParseV1Response converts a v1 body into a NormalizedResult. The body is
// XML-derived JSON by default; raw XML bodies (PreferJSON disabled) are
// detected and handled equivalently. translate enables the known-error
// message translation table.
func ParseV1Response(body []byte, httpCode int, translate bool) (*NormalizedResult, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<") {
		return parseV1XML(body, httpCode, translate)
	}

	var envelope v1Envelope

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing v1 response: %w", err)
	}

	if envelope.Response.Status == "" {
		return nil, ErrMalformedV1Response
	}

	result := &NormalizedResult{
		Status:    envelope.Response.Status,
		HTTPCode:  httpCode,
		Translate: translate,
	}

	if envelope.Response.Error != nil {
		result.Message = envelope.Response.Error.Message
	}

	if envelope.Response.Value != nil {
		value, err := convertV1Value(envelope.Response.Value)
		if err != nil {
			return nil, err
		}

		result.Value = value
	}

	return result, nil
}

// convertV1Value extracts the typed scalar from the nested
// {"type": ..., "$": ...} shape.
func convertV1Value(v *v1Value) (interface{}, error) {
	switch v.Type {
	case "int", "long":
		var n int
		if err := json.Unmarshal(v.Value, &n); err != nil {
			return nil, fmt.Errorf("converting v1 int value: %w", err)
		}

		return n, nil
	case "float", "double":
		var f float64
		if err := json.Unmarshal(v.Value, &f); err != nil {
			return nil, fmt.Errorf("converting v1 float value: %w", err)
		}

		return f, nil
	case "boolean", "bool":
		var b bool
		if err := json.Unmarshal(v.Value, &b); err != nil {
			return nil, fmt.Errorf("converting v1 boolean value: %w", err)
		}

		return b, nil
	case "string", "date", "datetime":
		var s string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, fmt.Errorf("converting v1 string value: %w", err)
		}

		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedValueType, v.Type)
	}
}

// parseV1XML handles raw XML v1 bodies.
func parseV1XML(body []byte, httpCode int, translate bool) (*NormalizedResult, error) {
	var envelope v1XMLEnvelope

	err := xml.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing v1 XML response: %w", err)
	}

	if envelope.Status == "" {
		return nil, ErrMalformedV1Response
	}

	result := &NormalizedResult{
		Status:    envelope.Status,
		HTTPCode:  httpCode,
		Translate: translate,
	}

	if envelope.Error != nil {
		result.Message = envelope.Error.Message
	}

	if envelope.Value != nil {
		value, err := convertV1Value(&v1Value{
			Type:  envelope.Value.Type,
			Value: xmlTextToJSON(envelope.Value.Type, envelope.Value.Text),
		})
		if err != nil {
			return nil, err
		}

		result.Value = value
	}

	return result, nil
}

// xmlTextToJSON re-encodes XML character data so convertV1Value can decode it
// uniformly. String-like types need quoting; numeric and boolean text is
// already valid JSON.
func xmlTextToJSON(valueType, text string) json.RawMessage {
	switch valueType {
	case "string", "date", "datetime":
		quoted, _ := json.Marshal(text)

		return quoted
	default:
		return json.RawMessage(strings.TrimSpace(text))
	}
}
