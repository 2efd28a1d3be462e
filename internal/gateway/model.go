// Package gateway is the browser-facing WebSocket edge. Each dashboard tab
// holds one connection: binary frames carry raw capture samples up, JSON text
// frames carry control commands up and typed events down.
package gateway

type CommandType string

const (
	CommandStart CommandType = "start"
	CommandStop  CommandType = "stop"
)

// ClientCommand is a JSON text frame from the browser.
type ClientCommand struct {
	Type CommandType `json:"type"`
}

type EventType string

const (
	EventState      EventType = "state"
	EventAudio      EventType = "audio"
	EventTranscript EventType = "transcript"
	EventError      EventType = "error"
	EventNotice     EventType = "notice"
)

// ServerEvent is a JSON text frame to the browser. Fields are populated per
// event type; the rest stay omitted.
type ServerEvent struct {
	Type EventType `json:"type"`

	// EventState
	State string `json:"state,omitempty"`

	// EventAudio: base64 PCM16 plus where on the playback timeline it starts.
	Data       string `json:"data,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
	StartMs    int64  `json:"startMs,omitempty"`

	// EventTranscript
	Role string `json:"role,omitempty"`
	Text string `json:"text,omitempty"`

	// EventError and EventNotice
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func StateEvent(state string) *ServerEvent {
	return &ServerEvent{Type: EventState, State: state}
}

func NoticeEvent(code, message string) *ServerEvent {
	return &ServerEvent{Type: EventNotice, Code: code, Message: message}
}

func ErrorEvent(code, message string) *ServerEvent {
	return &ServerEvent{Type: EventError, Code: code, Message: message}
}
