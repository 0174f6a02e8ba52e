package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"nio/internal/db"
	"nio/internal/format"
	"nio/internal/logger"
	"nio/internal/models"
	"nio/internal/store"
)

const nameLength = 50

// Service loads and mutates conversation history and reports the results
// to the store through dispatched actions.
type Service struct {
	db    *sql.DB
	limit int
	log   *slog.Logger
	group singleflight.Group
	now   func() time.Time
}

func NewService(conn *sql.DB, limit int) *Service {
	return &Service{
		db:    conn,
		limit: limit,
		log:   logger.WithComponent("conversation"),
		now:   time.Now,
	}
}

// RefreshList reloads history. Overlapping calls share one query.
func (s *Service) RefreshList(ctx context.Context, dispatch store.Dispatcher) error {
	v, err, _ := s.group.Do("history", func() (interface{}, error) {
		return db.ListConversations(ctx, s.db, s.limit)
	})
	if err != nil {
		s.log.Error("refresh conversation list", "error", err)
		return err
	}
	dispatch.Dispatch(store.SetHistory{History: v.([]models.Conversation)})
	return nil
}

// SetActive switches the current conversation. NewConversationID starts a
// fresh, not yet persisted conversation.
func (s *Service) SetActive(ctx context.Context, dispatch store.Dispatcher, id int64) error {
	if id == models.NewConversationID {
		dispatch.Dispatch(store.SetCurrent{ID: id})
		dispatch.Dispatch(store.SetMessages{Messages: nil})
		return nil
	}
	msgs, err := db.GetMessages(ctx, s.db, id)
	if err != nil {
		s.log.Error("load conversation", "conversation", id, "error", err)
		return err
	}
	dispatch.Dispatch(store.SetCurrent{ID: id})
	dispatch.Dispatch(store.SetMessages{Messages: msgs})
	return nil
}

// Delete removes a conversation and reports success.
func (s *Service) Delete(ctx context.Context, dispatch store.Dispatcher, id int64) bool {
	if id == models.NewConversationID {
		return false
	}
	if err := db.DeleteConversation(ctx, s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.log.Warn("delete unknown conversation", "conversation", id)
		} else {
			s.log.Error("delete conversation", "conversation", id, "error", err)
		}
		return false
	}
	dispatch.Dispatch(store.RemoveConversation{ID: id})
	return true
}

// Create persists a new conversation named after its first message.
func (s *Service) Create(ctx context.Context, firstMessage, modelID string) (models.Conversation, error) {
	name := format.ExtractMessage(format.SanitizeName(firstMessage), nameLength, format.DefaultExtractFlag)
	if strings.TrimSpace(name) == "" {
		name = "New chat"
	}
	conv, err := db.CreateConversation(ctx, s.db, name, modelID, s.now())
	if err != nil {
		return models.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// Discard removes a conversation without reporting it to the store. It is
// used to roll back a conversation whose first message could not be saved.
func (s *Service) Discard(ctx context.Context, id int64) error {
	if err := db.DeleteConversation(ctx, s.db, id); err != nil {
		return fmt.Errorf("discard conversation %d: %w", id, err)
	}
	return nil
}

func (s *Service) AppendMessage(ctx context.Context, conversationID int64, msg models.Message) error {
	if err := db.InsertMessage(ctx, s.db, conversationID, msg); err != nil {
		return err
	}
	return db.TouchConversation(ctx, s.db, conversationID, s.now())
}

func (s *Service) UpdateMessage(ctx context.Context, messageID, content string) error {
	return db.UpdateMessageContent(ctx, s.db, messageID, content)
}
