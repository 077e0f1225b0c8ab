package conversation

import "strings"

type EventKind int

const (
	// TextInput is a free-text message, possibly carrying a photo.
	TextInput EventKind = iota
	// Selection is a press on an inline menu button.
	Selection
)

func (k EventKind) String() string {
	if k == Selection {
		return "selection"
	}
	return "text"
}

const restartCommand = "/start"

// Event is one inbound unit of work for a chat.
type Event struct {
	Kind     EventKind
	ChatID   int64
	Username string
	// MessageID is the inbound message for TextInput and the message
	// carrying the pressed button for Selection.
	MessageID int64
	Text      string
	// Data is the payload of the pressed button.
	Data string
	// SelectionID acknowledges the button press to the transport.
	SelectionID string
	// PhotoRef references the largest size of an attached photo.
	PhotoRef string
}

func (e Event) IsSelection() bool {
	return e.Kind == Selection
}

func (e Event) HasPhoto() bool {
	return e.PhotoRef != ""
}

// IsRestart reports whether the event is the reset command, with or without
// a bot mention or deep-link payload.
func (e Event) IsRestart() bool {
	if e.Kind != TextInput {
		return false
	}
	fields := strings.Fields(e.Text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == restartCommand
}
