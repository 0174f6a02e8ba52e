package store

import "nio/internal/models"

// Action is a write request against the store.
type Action interface {
	action()
}

type (
	SetCurrent         struct{ ID int64 }
	SetHistory         struct{ History []models.Conversation }
	RemoveConversation struct{ ID int64 }
	SetMessages        struct{ Messages []models.Message }
	AppendMessage      struct{ Message models.Message }
	// UpdateMessage replaces the content of the message with the given id.
	UpdateMessage struct {
		ID      string
		Content string
	}
	SetModel struct{ Model string }
	SetWeb   struct{ Web bool }
	SetMenu  struct{ Open bool }
	SetAuth  struct {
		Authenticated bool
		Init          bool
	}
)

func (SetCurrent) action()         {}
func (SetHistory) action()         {}
func (RemoveConversation) action() {}
func (SetMessages) action()        {}
func (AppendMessage) action()      {}
func (UpdateMessage) action()      {}
func (SetModel) action()           {}
func (SetWeb) action()             {}
func (SetMenu) action()            {}
func (SetAuth) action()            {}

func reduce(st State, a Action) State {
	switch a := a.(type) {
	case SetCurrent:
		st.Current = a.ID
	case SetHistory:
		st.History = append([]models.Conversation(nil), a.History...)
	case RemoveConversation:
		kept := make([]models.Conversation, 0, len(st.History))
		for _, c := range st.History {
			if c.ID != a.ID {
				kept = append(kept, c)
			}
		}
		st.History = kept
		if st.Current == a.ID {
			st.Current = models.NewConversationID
			st.Messages = nil
		}
	case SetMessages:
		st.Messages = append([]models.Message(nil), a.Messages...)
	case AppendMessage:
		msgs := make([]models.Message, len(st.Messages), len(st.Messages)+1)
		copy(msgs, st.Messages)
		st.Messages = append(msgs, a.Message)
	case UpdateMessage:
		msgs := append([]models.Message(nil), st.Messages...)
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].ID == a.ID {
				msgs[i].Content = a.Content
				break
			}
		}
		st.Messages = msgs
	case SetModel:
		st.Model = a.Model
	case SetWeb:
		st.Web = a.Web
	case SetMenu:
		st.MenuOpen = a.Open
	case SetAuth:
		st.Authenticated = a.Authenticated
		st.Init = a.Init
	}
	return st
}
