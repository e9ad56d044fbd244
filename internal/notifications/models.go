package notifications

import "time"

// Event titles sent to the UI notification layer
const (
	TitleImportSuccess = "import success"
	TitleError         = "error"
)

// Event is a terminal import outcome delivered to the notification layer
type Event struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Kind   string `json:"kind,omitempty"`
}

// IsError reports whether the event describes a failed import
func (e Event) IsError() bool {
	return e.Title == TitleError
}

// WebSocketMessage is the frame pushed to subscribed clients
type WebSocketMessage struct {
	Type      string    `json:"type"`
	Payload   Event     `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageTypeImport is the WebSocketMessage type for import events
const MessageTypeImport = "boundary_import"
