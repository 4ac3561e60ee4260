package messaging

import (
	"encoding/xml"
)

// TwiML is the markup document returned to the telephony platform. The
// response body is the side effect: it tells the platform what to do next
// with the active call.
type TwiML struct {
	XMLName xml.Name    `xml:"Response"`
	Verbs   []interface{}
}

// Say speaks a prompt to the caller.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Record records the caller after the preceding verbs.
type Record struct {
	XMLName   xml.Name `xml:"Record"`
	Action    string   `xml:"action,attr,omitempty"`
	MaxLength int      `xml:"maxLength,attr,omitempty"`
	Timeout   int      `xml:"timeout,attr,omitempty"`
	PlayBeep  bool     `xml:"playBeep,attr"`
}

// Message sends a text reply to an inbound SMS.
type Message struct {
	XMLName xml.Name `xml:"Message"`
	Text    string   `xml:",chardata"`
}

// Connect bridges the call to a real-time endpoint.
type Connect struct {
	XMLName xml.Name `xml:"Connect"`
	Stream  *Stream  `xml:"Stream,omitempty"`
}

// Stream opens a bidirectional audio stream to a conversational voice agent.
type Stream struct {
	XMLName xml.Name `xml:"Stream"`
	URL     string   `xml:"url,attr"`
}

// Hangup ends the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// Render marshals the document with the XML declaration the telephony
// platform expects. Rendering is pure: no external call is made.
func (t *TwiML) Render() (string, error) {
	body, err := xml.Marshal(t)
	if err != nil {
		return "", err
	}
	return xml.Header + string(body), nil
}

// Append adds a verb to the response.
func (t *TwiML) Append(verb interface{}) *TwiML {
	t.Verbs = append(t.Verbs, verb)
	return t
}
