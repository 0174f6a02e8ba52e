package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nio/internal/models"
)

func history() []models.Conversation {
	return []models.Conversation{{ID: 1, Name: "Trip plan"}, {ID: 2, Name: "Recipe"}}
}

func TestNewStoreDefaults(t *testing.T) {
	s := New(models.BaselineModel, true)

	assert.Equal(t, models.NewConversationID, s.Current())
	assert.Equal(t, models.BaselineModel, s.Model())
	assert.True(t, s.Web())
	assert.False(t, s.Authenticated())
	assert.False(t, s.Init())
	assert.Empty(t, s.History())
}

func TestRemoveCurrentConversationResetsSelection(t *testing.T) {
	s := New(models.BaselineModel, true)
	s.Dispatch(SetHistory{History: history()})
	s.Dispatch(SetCurrent{ID: 1})
	s.Dispatch(SetMessages{Messages: []models.Message{{ID: "m1", Content: "hi"}}})

	s.Dispatch(RemoveConversation{ID: 1})

	assert.Equal(t, models.NewConversationID, s.Current())
	assert.Empty(t, s.Messages())
	require.Len(t, s.History(), 1)
	assert.Equal(t, int64(2), s.History()[0].ID)
}

func TestRemoveOtherConversationKeepsSelection(t *testing.T) {
	s := New(models.BaselineModel, true)
	s.Dispatch(SetHistory{History: history()})
	s.Dispatch(SetCurrent{ID: 1})

	s.Dispatch(RemoveConversation{ID: 2})

	assert.Equal(t, int64(1), s.Current())
	assert.True(t, s.Snapshot().HasConversation(1))
	assert.False(t, s.Snapshot().HasConversation(2))
}

func TestUpdateMessageTargetsID(t *testing.T) {
	s := New(models.BaselineModel, true)
	s.Dispatch(AppendMessage{Message: models.Message{ID: "a", Content: "question"}})
	s.Dispatch(AppendMessage{Message: models.Message{ID: "b", Content: ""}})

	s.Dispatch(UpdateMessage{ID: "b", Content: "answer"})

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "question", msgs[0].Content)
	assert.Equal(t, "answer", msgs[1].Content)
}

func TestSelectorsReturnCopies(t *testing.T) {
	s := New(models.BaselineModel, true)
	s.Dispatch(SetHistory{History: history()})

	h := s.History()
	h[0].Name = "mutated"

	assert.Equal(t, "Trip plan", s.History()[0].Name)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := New(models.BaselineModel, true)
	var seen []State
	unsubscribe := s.Subscribe(func(st State) {
		seen = append(seen, st)
	})

	s.Dispatch(SetWeb{Web: false})
	s.Dispatch(SetAuth{Authenticated: true, Init: true})
	unsubscribe()
	s.Dispatch(SetMenu{Open: true})

	require.Len(t, seen, 2)
	assert.False(t, seen[0].Web)
	assert.True(t, seen[1].Authenticated)
	assert.True(t, seen[1].Init)
	assert.True(t, s.MenuOpen())
}

func TestConcurrentDispatch(t *testing.T) {
	s := New(models.BaselineModel, true)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(AppendMessage{Message: models.Message{ID: string(rune('a' + i%26))}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Messages(), 50)
}
