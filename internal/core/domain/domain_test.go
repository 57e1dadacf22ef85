package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   domain.ErrorKind
	}{
		{401, domain.KindUnauthorized},
		{403, domain.KindForbidden},
		{404, domain.KindNotFound},
		{500, domain.KindServerError},
		{503, domain.KindServerError},
		{400, domain.KindUnknown},
		{418, domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindForStatus(tt.status))
		})
	}
}

func TestRequestError_Is(t *testing.T) {
	err := &domain.RequestError{Kind: domain.KindUnauthorized, StatusCode: 401}
	wrapped := zerr.With(zerr.Wrap(err, "failed to load current user"), "path", "/user/get/login")

	assert.ErrorIs(t, wrapped, domain.ErrUnauthorized)
	assert.NotErrorIs(t, wrapped, domain.ErrForbidden)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(wrapped))
	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("plain")))
}

func TestRequestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *domain.RequestError
		want string
	}{
		{
			name: "application error carries server message",
			err:  &domain.RequestError{Kind: domain.KindApplication, Code: 40000, Reason: "bad request"},
			want: "bad request",
		},
		{
			name: "status appended for http errors",
			err:  &domain.RequestError{Kind: domain.KindServerError, StatusCode: 502},
			want: "server error (status 502)",
		},
		{
			name: "cause appended",
			err:  &domain.RequestError{Kind: domain.KindNetwork, Err: errors.New("connection refused")},
			want: "network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestRequestError_Metadata(t *testing.T) {
	md := (&domain.RequestError{Kind: domain.KindApplication, Code: 40100}).Metadata()
	assert.Equal(t, map[string]any{"kind": "application", "code": 40100}, md)

	md = (&domain.RequestError{Kind: domain.KindNotFound, StatusCode: 404}).Metadata()
	assert.Equal(t, map[string]any{"kind": "not_found", "status_code": 404}, md)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "protocol_decode", domain.KindProtocolDecode.String())
	assert.Equal(t, "kind(42)", domain.ErrorKind(42).String())
}

func TestCacheEntry_IsStale(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry domain.CacheEntry
		want  bool
	}{
		{
			name:  "never fetched",
			entry: domain.CacheEntry{StaleAfter: time.Hour},
			want:  true,
		},
		{
			name:  "fresh",
			entry: domain.CacheEntry{FetchedAt: now.Add(-time.Minute), StaleAfter: time.Hour},
			want:  false,
		},
		{
			name:  "expired",
			entry: domain.CacheEntry{FetchedAt: now.Add(-2 * time.Hour), StaleAfter: time.Hour},
			want:  true,
		},
		{
			name:  "invalidated while fresh",
			entry: domain.CacheEntry{FetchedAt: now, StaleAfter: time.Hour, Invalidated: true},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsStale(now))
		})
	}
}

func TestGenerationChunk_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    domain.GenerationChunk
	}{
		{
			name:    "typed message",
			payload: `{"type":"tool_request","content":"write index.html","timestamp":1700000000}`,
			want:    domain.GenerationChunk{Type: domain.MessageToolRequest, Content: "write index.html", Timestamp: 1700000000},
		},
		{
			name:    "compact message",
			payload: `{"d":"<html>"}`,
			want:    domain.GenerationChunk{Type: domain.MessageAIResponse, Content: "<html>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.GenerationChunk
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodeGenType_Valid(t *testing.T) {
	assert.True(t, domain.CodeGenVueProject.Valid())
	assert.True(t, domain.CodeGenType("").Valid())
	assert.False(t, domain.CodeGenType("react").Valid())
}
