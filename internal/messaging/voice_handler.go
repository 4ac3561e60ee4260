package messaging

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/maxitel/webhook-relay/pkg/logging"
)

// defaultGreeting is spoken when no greeting is configured.
const defaultGreeting = "Thanks for calling. Please tell us your name, phone number and when you would like us to call you back."

// streamURLFormat is the voice-agent websocket endpoint. The platform opens
// the socket itself; we only hand it the URL.
const streamURLFormat = "wss://api.elevenlabs.io/v1/convai/conversation?agent_id=%s"

// VoiceHandlerConfig configures the VoiceHandler.
type VoiceHandlerConfig struct {
	BrandName     string
	Greeting      string
	StreamAgentID string
	Logger        *logging.Logger
}

// VoiceHandler renders TwiML for telephony-originated callbacks: inbound
// calls, completed recordings and inbound SMS. Rendering is stateless; the
// only ordering is within a single response body.
type VoiceHandler struct {
	brandName     string
	greeting      string
	streamAgentID string
	logger        *logging.Logger
}

// NewVoiceHandler creates a new VoiceHandler.
func NewVoiceHandler(cfg VoiceHandlerConfig) *VoiceHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	greeting := strings.TrimSpace(cfg.Greeting)
	if greeting == "" {
		greeting = defaultGreeting
	}
	brand := strings.TrimSpace(cfg.BrandName)
	if brand == "" {
		brand = "our team"
	}
	return &VoiceHandler{
		brandName:     brand,
		greeting:      greeting,
		streamAgentID: cfg.StreamAgentID,
		logger:        cfg.Logger,
	}
}

// HandleInbound serves /voice/inbound. The response either bridges the call
// to the configured streaming voice agent or records a message for callback.
// A caller-supplied agent_id (query or form field) overrides the configured
// one. The platform must always get well-formed markup, even when our own
// processing fails.
func (h *VoiceHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	from := NormalizeE164(r.FormValue("From"))
	callSid := r.FormValue("CallSid")
	h.logger.Info("inbound call", "from", from, "call_sid", callSid)

	agentID := strings.TrimSpace(r.FormValue("agent_id"))
	if agentID == "" {
		agentID = h.streamAgentID
	}

	doc := &TwiML{}
	doc.Append(Say{Text: h.greeting})
	if agentID != "" {
		doc.Append(Connect{Stream: &Stream{URL: fmt.Sprintf(streamURLFormat, agentID)}})
	} else {
		doc.Append(Record{Action: "/voice/recorded", MaxLength: 120, Timeout: 5, PlayBeep: true})
	}
	h.writeTwiML(w, doc)
}

// HandleRecorded serves /voice/recorded and /voice/recording-complete.
func (h *VoiceHandler) HandleRecorded(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	h.logger.Info("recording complete",
		"from", NormalizeE164(r.FormValue("From")),
		"call_sid", r.FormValue("CallSid"),
		"recording_url", r.FormValue("RecordingUrl"),
		"recording_duration", r.FormValue("RecordingDuration"),
	)

	doc := &TwiML{}
	doc.Append(Say{Text: fmt.Sprintf("Thank you. Someone from %s will call you back shortly. Goodbye.", h.brandName)})
	doc.Append(Hangup{})
	h.writeTwiML(w, doc)
}

// HandleInboundSMS serves /sms/inbound and /incoming with a markup reply
// acting on the body text.
func (h *VoiceHandler) HandleInboundSMS(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	from := NormalizeE164(r.FormValue("From"))
	body := strings.TrimSpace(r.FormValue("Body"))
	h.logger.Info("inbound sms", "from", from, "body_len", len(body))

	doc := &TwiML{}
	doc.Append(Message{Text: h.smsReply(body)})
	h.writeTwiML(w, doc)
}

func (h *VoiceHandler) smsReply(body string) string {
	lowered := strings.ToLower(body)
	switch {
	case strings.Contains(lowered, "confirm"):
		return fmt.Sprintf("Thanks! Your appointment with %s is confirmed.", h.brandName)
	case strings.Contains(lowered, "book") || strings.Contains(lowered, "appointment") || strings.Contains(lowered, "schedule"):
		return fmt.Sprintf("Happy to help you book with %s. Give us a call and our voice assistant will find a time that works.", h.brandName)
	default:
		return fmt.Sprintf("Thanks for reaching out to %s. Call us any time and our voice assistant will help you right away.", h.brandName)
	}
}

func (h *VoiceHandler) writeTwiML(w http.ResponseWriter, doc *TwiML) {
	body, err := doc.Render()
	if err != nil {
		// Never leave the platform without a response.
		h.logger.Error("twiml render failed", "error", err)
		body = xmlFallback
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

const xmlFallback = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>We are unable to take your call right now. Please try again later.</Say></Response>`
