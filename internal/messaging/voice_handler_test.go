package messaging

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postForm(t *testing.T, handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleInboundRecordsWithoutAgent(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{BrandName: "Maxi"})

	rec := postForm(t, h.HandleInbound, "/voice/inbound", url.Values{
		"From":    {"+12025551234"},
		"To":      {"+15550001111"},
		"CallSid": {"CA123"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("expected xml content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<Say>") {
		t.Errorf("expected a speak instruction:\n%s", body)
	}
	if !strings.Contains(body, "<Record") {
		t.Errorf("expected a record instruction without an agent:\n%s", body)
	}
	if strings.Contains(body, "<Connect>") {
		t.Errorf("no stream bridge expected without an agent:\n%s", body)
	}
}

func TestHandleInboundBridgesToConfiguredAgent(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{BrandName: "Maxi", StreamAgentID: "agent_42"})

	rec := postForm(t, h.HandleInbound, "/voice/inbound", url.Values{
		"From": {"+12025551234"},
	})

	body := rec.Body.String()
	if !strings.Contains(body, "<Connect>") || !strings.Contains(body, "agent_id=agent_42") {
		t.Errorf("expected a stream bridge to the configured agent:\n%s", body)
	}
	if strings.Contains(body, "<Record") {
		t.Errorf("record should be replaced by the stream bridge:\n%s", body)
	}
}

func TestHandleInboundCallerSuppliedAgentOverrides(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{StreamAgentID: "agent_default"})

	rec := postForm(t, h.HandleInbound, "/voice/inbound", url.Values{
		"From":     {"+12025551234"},
		"agent_id": {"agent_override"},
	})

	body := rec.Body.String()
	if !strings.Contains(body, "agent_id=agent_override") {
		t.Errorf("expected caller-supplied agent id:\n%s", body)
	}
}

func TestHandleInboundAcceptsGet(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/voice/inbound?From=%2B12025551234", nil)
	rec := httptest.NewRecorder()
	h.HandleInbound(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET callback, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<Say>") {
		t.Errorf("expected speak instruction on GET:\n%s", rec.Body.String())
	}
}

func TestHandleRecorded(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{BrandName: "Maxi"})

	rec := postForm(t, h.HandleRecorded, "/voice/recorded", url.Values{
		"From":              {"+12025551234"},
		"CallSid":           {"CA123"},
		"RecordingUrl":      {"https://api.twilio.com/recordings/RE123"},
		"RecordingDuration": {"42"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Maxi") {
		t.Errorf("acknowledgment should name the brand:\n%s", body)
	}
	if !strings.Contains(body, "<Hangup>") {
		t.Errorf("expected hangup after acknowledgment:\n%s", body)
	}
}

func TestHandleInboundSMSReplies(t *testing.T) {
	h := NewVoiceHandler(VoiceHandlerConfig{BrandName: "Maxi"})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"confirm keyword", "CONFIRM", "confirmed"},
		{"booking keyword", "I want to book an appointment", "book"},
		{"generic", "hello there", "voice assistant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, h.HandleInboundSMS, "/sms/inbound", url.Values{
				"From": {"+12025551234"},
				"Body": {tt.body},
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, "<Message>") {
				t.Fatalf("expected a message reply:\n%s", body)
			}
			if !strings.Contains(strings.ToLower(body), tt.want) {
				t.Errorf("expected reply mentioning %q:\n%s", tt.want, body)
			}
		})
	}
}
