package utils

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorWrapping(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := E(CodeServiceError, "TranscriptionService.Transcribe", "could not transcribe the audio", inner)

	if !IsCode(err, CodeServiceError) {
		t.Fatal("expected SERVICE_ERROR")
	}
	if IsCode(err, CodeInvalidInput) {
		t.Fatal("wrong code matched")
	}
	if !errors.Is(err, inner) {
		t.Fatal("wrapped error lost")
	}
}

func TestSafeMessageHidesWrappedError(t *testing.T) {
	inner := errors.New("401 invalid api key sk-abc123")
	err := E(CodeServiceError, "op", "could not create the summary", inner)

	if got := SafeMessage(err); got != "could not create the summary" {
		t.Fatalf("unexpected safe message: %q", got)
	}
	if got := SafeMessage(inner); got != "internal error" {
		t.Fatalf("unknown errors must collapse, got %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeConflict, http.StatusConflict},
		{CodeDeviceUnavailable, http.StatusServiceUnavailable},
		{CodeServiceError, http.StatusInternalServerError},
		{CodeMalformedResponse, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(E(tc.code, "op", "msg", nil)); got != tc.want {
			t.Fatalf("code %s: expected %d, got %d", tc.code, tc.want, got)
		}
	}
	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("plain error: expected 500, got %d", got)
	}
}
