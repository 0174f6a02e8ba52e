package models

import "time"

// NewConversationID marks a conversation that has not been created yet.
const NewConversationID int64 = -1

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type AIModel struct {
	ID          string
	Name        string
	Provider    string
	Description string
}

// Conversation is one entry of the history list.
type Conversation struct {
	ID        int64
	Name      string
	Model     string
	UpdatedAt time.Time
}

type Message struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// FileObject is a file attached to the composer draft.
type FileObject struct {
	Name    string
	Content string
}

func (f FileObject) Empty() bool {
	return f.Name == "" && f.Content == ""
}
