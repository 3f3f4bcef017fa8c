package communet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseV2Response(t *testing.T) {
	t.Run("success with resource fields", func(t *testing.T) {
		body := []byte(`{
			"status": "success",
			"http_code": 200,
			"data": {
				"type": "board",
				"id": "product-news",
				"href": "/boards/product-news",
				"view_href": "https://community.example.com/t5/bg-p/product-news"
			}
		}`)

		result, err := ParseV2Response(body, 200, false)
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
		assert.Equal(t, 200, result.HTTPCode)
		assert.Equal(t, "product-news", result.ID)
		assert.Equal(t, "https://community.example.com/t5/bg-p/product-news", result.URL)
		assert.Equal(t, "/boards/product-news", result.APIURL)
	})

	t.Run("numeric string http_code is coerced to int", func(t *testing.T) {
		body := []byte(`{"status": "error", "http_code": "403", "message": "no access"}`)

		result, err := ParseV2Response(body, 403, false)
		require.NoError(t, err)
		assert.Equal(t, 403, result.HTTPCode)
	})

	t.Run("missing http_code falls back to transport status", func(t *testing.T) {
		body := []byte(`{"status": "success", "data": {"id": "x"}}`)

		result, err := ParseV2Response(body, 201, false)
		require.NoError(t, err)
		assert.Equal(t, 201, result.HTTPCode)
	})

	t.Run("numeric id is stringified", func(t *testing.T) {
		body := []byte(`{"status": "success", "data": {"id": 4412}}`)

		result, err := ParseV2Response(body, 200, false)
		require.NoError(t, err)
		assert.Equal(t, "4412", result.ID)
	})

	t.Run("missing status field counts as success", func(t *testing.T) {
		body := []byte(`{"data": {"id": "x"}}`)

		result, err := ParseV2Response(body, 200, false)
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		_, err := ParseV2Response([]byte("not json"), 200, false)
		require.Error(t, err)
	})
}

func TestParseV1Response(t *testing.T) {
	t.Run("int value", func(t *testing.T) {
		body := []byte(`{"response": {"status": "success", "value": {"type": "int", "$": 544}}}`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
		assert.Equal(t, 544, result.Value)
	})

	t.Run("string value", func(t *testing.T) {
		body := []byte(`{"response": {"status": "success", "value": {"type": "string", "$": "abc123"}}}`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.Equal(t, "abc123", result.Value)
	})

	t.Run("boolean value", func(t *testing.T) {
		body := []byte(`{"response": {"status": "success", "value": {"type": "boolean", "$": true}}}`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.Equal(t, true, result.Value)
	})

	t.Run("float value", func(t *testing.T) {
		body := []byte(`{"response": {"status": "success", "value": {"type": "float", "$": 2.5}}}`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.Equal(t, 2.5, result.Value)
	})

	t.Run("error envelope", func(t *testing.T) {
		body := []byte(`{"response": {"status": "error", "error": {"code": "302", "message": "User authentication failed."}}}`)

		result, err := ParseV1Response(body, 403, false)
		require.NoError(t, err)
		assert.False(t, result.Succeeded())
		assert.Equal(t, "User authentication failed.", result.Message)
		assert.Equal(t, 403, result.HTTPCode)
	})

	t.Run("raw xml body", func(t *testing.T) {
		body := []byte(`<response status="success"><value type="int">544</value></response>`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
		assert.Equal(t, 544, result.Value)
	})

	t.Run("raw xml error", func(t *testing.T) {
		body := []byte(`<response status="error"><error code="504"><message>Node not found</message></error></response>`)

		result, err := ParseV1Response(body, 200, false)
		require.NoError(t, err)
		assert.False(t, result.Succeeded())
		assert.Equal(t, "Node not found", result.Message)
	})

	t.Run("unsupported value type", func(t *testing.T) {
		body := []byte(`{"response": {"status": "success", "value": {"type": "blob", "$": "x"}}}`)

		_, err := ParseV1Response(body, 200, false)
		require.ErrorIs(t, err, ErrUnsupportedValueType)
	})

	t.Run("missing status is malformed", func(t *testing.T) {
		body := []byte(`{"response": {}}`)

		_, err := ParseV1Response(body, 200, false)
		require.ErrorIs(t, err, ErrMalformedV1Response)
	})
}

func TestNormalizedResult_ErrorMessage(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		developer string
		split     bool
		expected  interface{}
	}{
		{"joined when different", "m", "d", false, "m - d"},
		{"collapsed when identical", "same", "same", false, "same"},
		{"message only", "m", "", false, "m"},
		{"developer only", "", "d", false, "d"},
		{"both empty", "", "", false, ""},
		{"split returns pair", "m", "d", true, [2]string{"m", "d"}},
		{"split keeps identical pair", "same", "same", true, [2]string{"same", "same"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			result := &NormalizedResult{Message: testCase.message, DeveloperMessage: testCase.developer}
			assert.Equal(t, testCase.expected, result.ErrorMessage(testCase.split))
		})
	}
}

func TestNormalizedResult_ErrorMessageTranslation(t *testing.T) {
	t.Run("translates when enabled", func(t *testing.T) {
		result := &NormalizedResult{Message: "User authentication failed.", Translate: true}

		message, ok := result.ErrorMessage(false).(string)
		require.True(t, ok)
		assert.NotEqual(t, "User authentication failed.", message)
		assert.Contains(t, message, "credentials")
	})

	t.Run("leaves text alone when disabled", func(t *testing.T) {
		result := &NormalizedResult{Message: "User authentication failed."}

		assert.Equal(t, "User authentication failed.", result.ErrorMessage(false))
	})
}

func TestNormalizedResult_Project(t *testing.T) {
	result := &NormalizedResult{
		Status:   StatusError,
		HTTPCode: 400,
		Message:  "bad request",
		ID:       "b-1",
		URL:      "https://c.example.com/b-1",
		APIURL:   "/boards/b-1",
	}

	t.Run("no flags returns success boolean", func(t *testing.T) {
		assert.Equal(t, false, result.Project(ReturnFields{}))

		success := &NormalizedResult{Status: StatusSuccess}
		assert.Equal(t, true, success.Project(ReturnFields{}))
	})

	t.Run("single flag returns bare value", func(t *testing.T) {
		assert.Equal(t, "b-1", result.Project(ReturnFields{ReturnID: true}))
		assert.Equal(t, 400, result.Project(ReturnFields{ReturnHTTPCode: true}))
	})

	t.Run("multiple flags return ordered slice", func(t *testing.T) {
		projected := result.Project(ReturnFields{
			ReturnStatus:   true,
			ReturnID:       true,
			ReturnHTTPCode: true,
		})

		// Fixed order regardless of how the request names them.
		assert.Equal(t, []interface{}{"b-1", 400, "error"}, projected)
	})

	t.Run("full response short-circuits other flags", func(t *testing.T) {
		raw := map[string]interface{}{"anything": true}
		withRaw := &NormalizedResult{Status: StatusSuccess, Raw: raw}

		projected := withRaw.Project(ReturnFields{FullResponse: true, ReturnID: true})
		assert.Equal(t, raw, projected)
	})
}

func TestProjectProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		result := &NormalizedResult{
			Status:   rapid.SampledFrom([]string{StatusSuccess, StatusError}).Draw(t, "status"),
			HTTPCode: rapid.IntRange(200, 599).Draw(t, "httpCode"),
			Message:  rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "message"),
			ID:       rapid.StringMatching(`[a-z0-9-]{0,12}`).Draw(t, "id"),
			URL:      rapid.StringMatching(`[a-z:/.-]{0,24}`).Draw(t, "url"),
		}

		fields := ReturnFields{
			ReturnID:            rapid.Bool().Draw(t, "retID"),
			ReturnURL:           rapid.Bool().Draw(t, "retURL"),
			ReturnAPIURL:        rapid.Bool().Draw(t, "retAPIURL"),
			ReturnHTTPCode:      rapid.Bool().Draw(t, "retHTTPCode"),
			ReturnStatus:        rapid.Bool().Draw(t, "retStatus"),
			ReturnErrorMessages: rapid.Bool().Draw(t, "retErrors"),
		}

		requested := 0
		for _, flag := range []bool{
			fields.ReturnID, fields.ReturnURL, fields.ReturnAPIURL,
			fields.ReturnHTTPCode, fields.ReturnStatus, fields.ReturnErrorMessages,
		} {
			if flag {
				requested++
			}
		}

		projected := result.Project(fields)

		// The shape depends only on how many fields were requested.
		switch requested {
		case 0:
			_, ok := projected.(bool)
			assert.True(t, ok)
		case 1:
			_, isSlice := projected.([]interface{})
			assert.False(t, isSlice)
		default:
			values, ok := projected.([]interface{})
			require.True(t, ok)
			assert.Len(t, values, requested)
		}

		// The http code, when requested, is always an int.
		if fields.ReturnHTTPCode {
			found := false

			switch v := projected.(type) {
			case int:
				found = true
			case []interface{}:
				for _, item := range v {
					if _, ok := item.(int); ok {
						found = true
					}
				}
			}

			assert.True(t, found, "projected http code must be an int")
		}
	})
}

func TestCoerceHTTPCodeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.IntRange(100, 599).Draw(t, "code")

		body := []byte(`{"status": "success", "http_code": "` + stringifyScalar(float64(code)) + `"}`)

		result, err := ParseV2Response(body, 200, false)
		require.NoError(t, err)
		assert.Equal(t, code, result.HTTPCode)
	})
}
