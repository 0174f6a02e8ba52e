package ui

import (
	"context"
	"time"

	"nio/internal/i18n"
	"nio/internal/manager"
	"nio/internal/models"
	"nio/internal/store"
)

const (
	SidebarWidth    = 32
	ModalWidth      = 56
	InputMaxHeight  = 6
	ExpandedHeight  = 12
	InputCharLimit  = 8000
	FileContentMax  = 5000
	MinRefreshShown = 500 * time.Millisecond
)

// ConversationService lists, activates and deletes conversations.
type ConversationService interface {
	RefreshList(ctx context.Context, dispatch store.Dispatcher) error
	SetActive(ctx context.Context, dispatch store.Dispatcher, id int64) error
	Delete(ctx context.Context, dispatch store.Dispatcher, id int64) bool
}

// Sender transmits composed messages.
type Sender interface {
	SetDispatch(d store.Dispatcher)
	Send(ctx context.Context, t i18n.Translator, authenticated bool, props manager.SendProps) bool
}

// Authenticator reports and changes the login state.
type Authenticator interface {
	Check(ctx context.Context) (bool, error)
	Login(ctx context.Context, token string) error
}

type focusArea int

const (
	focusComposer focusArea = iota
	focusSidebar
)

// StateChangedMsg is delivered after the store changed.
type StateChangedMsg struct{}

type authCheckedMsg struct {
	ok  bool
	err error
}

type loginDoneMsg struct{ err error }

type refreshDoneMsg struct {
	err      error
	animated bool
}

type selectDoneMsg struct {
	id  int64
	err error
}

type deleteDoneMsg struct {
	conv models.Conversation
	ok   bool
}

type sendResultMsg struct {
	ok        bool
	fromDraft bool
}

type fileLoadedMsg struct {
	file models.FileObject
	err  error
}

type scrollFrameMsg struct{}
