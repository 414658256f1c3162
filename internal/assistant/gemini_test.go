package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeBody = Book{Title: "三体", Author: "刘慈欣", Summary: "红岸工程"}

func TestPrompt(t *testing.T) {
	assert.Equal(t,
		"你是一个熟悉小说《三体》的AI助手。作者是刘慈欣。简介：红岸工程。请回答读者的问题：叶文洁是谁？",
		Prompt(threeBody, "叶文洁是谁？"))
}

func TestGeminiAsk(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"她是"},{"text":"天体物理学家。"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "secret", BaseURL: srv.URL})
	answer, err := g.Ask(context.Background(), threeBody, "叶文洁是谁？")
	require.NoError(t, err)
	assert.Equal(t, "她是天体物理学家。", answer)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, Prompt(threeBody, "叶文洁是谁？"), got.Contents[0].Parts[0].Text)
}

func TestGeminiNoCredential(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := NewGemini(GeminiConfig{BaseURL: srv.URL}).Ask(context.Background(), threeBody, "hi")
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, calls.Load(), "no request without a key")
}

func TestGeminiErrors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "api error",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
		},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: ErrNoAnswer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewGemini(GeminiConfig{APIKey: "k", BaseURL: srv.URL}).Ask(context.Background(), threeBody, "q")
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}
