package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is a response envelope with the payload left undecoded
type Envelope struct {
	Data json.RawMessage  `json:"data"`
	Meta dto.ResponseMeta `json:"meta"`
}

// Perform sends a request through h. A string or []byte body is sent as is,
// anything else is marshalled to JSON.
func Perform(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		reader = ToJSONReader(t, b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeEnvelope parses the recorded response as an envelope
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to parse envelope: %s", w.Body.String())
	return env
}

// DecodeData parses the envelope payload into T
func DecodeData[T any](t *testing.T, env Envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "Failed to parse envelope data")
	return out
}

// AssertSuccessResponse checks a success envelope with the given status
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, status int) Envelope {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
	env := DecodeEnvelope(t, w)
	assert.Equal(t, dto.StatusSuccess, env.Meta.Status)
	assert.Empty(t, env.Meta.ErrorCode)
	return env
}

// AssertErrorResponse checks an error envelope with the given status and error code
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) Envelope {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
	env := DecodeEnvelope(t, w)
	assert.Equal(t, dto.StatusError, env.Meta.Status)
	assert.Equal(t, code, env.Meta.ErrorCode)
	return env
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
