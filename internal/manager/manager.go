package manager

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/models"
	"nio/internal/store"
)

// SendProps is one outgoing message.
type SendProps struct {
	Message string
	Web     bool
	Model   string
}

// StateReader is the read side of the store the manager needs.
type StateReader interface {
	Current() int64
	Messages() []models.Message
}

// Persister stores conversations for authenticated users.
type Persister interface {
	Create(ctx context.Context, firstMessage, modelID string) (models.Conversation, error)
	AppendMessage(ctx context.Context, conversationID int64, msg models.Message) error
	UpdateMessage(ctx context.Context, messageID, content string) error
	RefreshList(ctx context.Context, dispatch store.Dispatcher) error
	Discard(ctx context.Context, conversationID int64) error
}

// TokenSource yields the personal token of a logged in user.
type TokenSource interface {
	Token() string
}

// Manager transmits composed messages and streams replies into the store.
// One send is in flight at a time.
type Manager struct {
	state     StateReader
	persist   Persister
	completer Completer
	tokens    TokenSource
	sharedKey string
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	dispatch store.Dispatcher
	busy     bool
	now      func() time.Time
}

func New(state StateReader, persist Persister, completer Completer, tokens TokenSource, sharedKey string) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		state:     state,
		persist:   persist,
		completer: completer,
		tokens:    tokens,
		sharedKey: sharedKey,
		log:       logger.WithComponent("manager"),
		ctx:       ctx,
		cancel:    cancel,
		now:       time.Now,
	}
}

func (m *Manager) SetDispatch(d store.Dispatcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatch = d
}

// discard drops a conversation created for a send that failed afterwards.
func (m *Manager) discard(ctx context.Context, id int64, created bool) {
	if !created {
		return
	}
	if err := m.persist.Discard(ctx, id); err != nil {
		m.log.Error("discard conversation", "conversation", id, "error", err)
	}
}

func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Send accepts a message and starts streaming the reply. It returns false
// when the message was not accepted; nothing is dispatched in that case.
func (m *Manager) Send(ctx context.Context, t i18n.Translator, authenticated bool, props SendProps) bool {
	message := strings.TrimSpace(props.Message)
	if message == "" {
		return false
	}
	if _, _, ok := models.FindModel(props.Model); !ok {
		m.log.Warn("send with unknown model", "model", props.Model)
		return false
	}
	if !authenticated && props.Model != models.BaselineModel {
		m.log.Warn("anonymous send with restricted model", "model", props.Model, "baseline", models.BaselineModel)
		return false
	}

	m.mu.Lock()
	dispatch := m.dispatch
	if dispatch == nil || m.busy {
		m.mu.Unlock()
		return false
	}
	m.busy = true
	m.mu.Unlock()

	accepted := false
	defer func() {
		if !accepted {
			m.setBusy(false)
		}
	}()

	convID := m.state.Current()
	persisted := authenticated && m.persist != nil
	created := false
	if persisted && convID == models.NewConversationID {
		conv, err := m.persist.Create(ctx, message, props.Model)
		if err != nil {
			m.log.Error("create conversation", "error", err)
			return false
		}
		convID = conv.ID
		created = true
	}

	now := m.now()
	user := models.Message{ID: uuid.NewString(), Role: models.RoleUser, Content: message, CreatedAt: now}
	reply := models.Message{ID: uuid.NewString(), Role: models.RoleAssistant, CreatedAt: now.Add(time.Nanosecond)}
	if persisted {
		if err := m.persist.AppendMessage(ctx, convID, user); err != nil {
			m.log.Error("persist user message", "conversation", convID, "error", err)
			m.discard(ctx, convID, created)
			return false
		}
		if err := m.persist.AppendMessage(ctx, convID, reply); err != nil {
			m.log.Error("persist reply placeholder", "conversation", convID, "error", err)
			m.discard(ctx, convID, created)
			return false
		}
	}

	history := append(m.state.Messages(), user)
	if created {
		history = []models.Message{user}
		dispatch.Dispatch(store.SetCurrent{ID: convID})
		dispatch.Dispatch(store.SetMessages{Messages: nil})
	}
	dispatch.Dispatch(store.AppendMessage{Message: user})
	dispatch.Dispatch(store.AppendMessage{Message: reply})
	if created {
		if err := m.persist.RefreshList(ctx, dispatch); err != nil {
			m.log.Warn("refresh after create", "error", err)
		}
	}

	req := Request{
		Model:    props.Model,
		Web:      props.Web,
		APIKey:   m.apiKey(authenticated),
		Messages: history,
	}
	accepted = true
	m.wg.Add(1)
	go m.stream(t, dispatch, persisted, reply.ID, req)
	return true
}

func (m *Manager) stream(t i18n.Translator, dispatch store.Dispatcher, persisted bool, replyID string, req Request) {
	defer m.wg.Done()
	defer m.setBusy(false)

	content, err := m.completer.Stream(m.ctx, req, func(partial string) {
		dispatch.Dispatch(store.UpdateMessage{ID: replyID, Content: partial})
	})
	if err != nil {
		m.log.Error("stream reply", "model", req.Model, "error", err)
		failure := t.T("chat.request-failed", err.Error())
		if strings.TrimSpace(content) == "" {
			content = failure
		} else {
			content += "\n\n" + failure
		}
	}
	dispatch.Dispatch(store.UpdateMessage{ID: replyID, Content: content})

	if persisted {
		if err := m.persist.UpdateMessage(context.Background(), replyID, content); err != nil {
			m.log.Error("persist reply", "error", err)
		}
	}
}

func (m *Manager) apiKey(authenticated bool) string {
	if authenticated && m.tokens != nil {
		if token := m.tokens.Token(); token != "" {
			return token
		}
	}
	return m.sharedKey
}

func (m *Manager) setBusy(busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = busy
}

// Wait blocks until in-flight replies finish.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close cancels in-flight replies and waits for them.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
