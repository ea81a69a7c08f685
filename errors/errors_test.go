package errors

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(KindNotFound)
	want := "Err-18430 (404): Not Found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWithContextSnapshots(t *testing.T) {
	ctx := Context{"url": "https://api.example.com/users", "method": "GET"}
	err := New(KindBadGateway).WithContext(ctx)

	// Mutating the source after attachment must not leak into the error.
	ctx.Set("method", "POST")
	if err.Details["method"] != "GET" {
		t.Errorf("details.method = %v, want GET", err.Details["method"])
	}
	if err.Details["url"] != "https://api.example.com/users" {
		t.Errorf("details.url = %v", err.Details["url"])
	}
}

func TestWithDetail(t *testing.T) {
	err := New(KindUnprocessableEntity).WithDetail("attempt", 2)
	if err.Details["attempt"] != 2 {
		t.Errorf("details.attempt = %v, want 2", err.Details["attempt"])
	}
}

func TestAsErrorAndIs(t *testing.T) {
	var err error = New(KindForbidden)
	wrapped := fmt.Errorf("call failed: %w", err)

	e, ok := AsError(wrapped)
	if !ok || e.Kind != KindForbidden {
		t.Fatalf("AsError: got %+v, %v", e, ok)
	}
	if !Is(wrapped, KindForbidden) {
		t.Error("Is(wrapped, KindForbidden) = false")
	}
	if Is(wrapped, KindNotFound) {
		t.Error("Is(wrapped, KindNotFound) = true")
	}
	if Is(fmt.Errorf("plain"), KindForbidden) {
		t.Error("Is(plain, KindForbidden) = true")
	}
}

func TestToResponseWireShape(t *testing.T) {
	err := New(KindUnprocessableEntity).
		WithMessage("validation failed").
		WithDetail("attempt", 1)

	raw, jsonErr := json.Marshal(err.ToResponse())
	if jsonErr != nil {
		t.Fatalf("marshal: %v", jsonErr)
	}
	var decoded map[string]any
	if jsonErr := json.Unmarshal(raw, &decoded); jsonErr != nil {
		t.Fatalf("unmarshal: %v", jsonErr)
	}
	if decoded["code"] != float64(422) {
		t.Errorf("code = %v, want 422", decoded["code"])
	}
	if decoded["msgid"] != "Err-12568" {
		t.Errorf("msgid = %v, want Err-12568", decoded["msgid"])
	}
	if decoded["message"] != "validation failed" {
		t.Errorf("message = %v", decoded["message"])
	}
	details, ok := decoded["details"].(map[string]any)
	if !ok || details["attempt"] != float64(1) {
		t.Errorf("details = %v", decoded["details"])
	}
}

func TestContextClone(t *testing.T) {
	var nilCtx Context
	if got := nilCtx.Clone(); got == nil || len(got) != 0 {
		t.Errorf("Clone of nil = %v", got)
	}
	src := Context{"a": 1}
	cp := src.Clone()
	cp.Set("a", 2)
	if src["a"] != 1 {
		t.Error("Clone shares storage with source")
	}
}
