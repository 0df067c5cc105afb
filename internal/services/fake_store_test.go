package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"convospace-backend/internal/models"
	"convospace-backend/internal/store"
)

// fakeStore is an in-memory store.Store with the same observable semantics as
// the Postgres implementation: cascade deletes, updated_at moved by Touch and
// Rename, preview truncation, and both list orderings. A monotonic fake clock
// keeps timestamps strictly increasing so ordering assertions are stable.
type fakeStore struct {
	mu            sync.Mutex
	now           time.Time
	nextUserID    int64
	nextConvID    int64
	nextMsgID     int64
	users         map[int64]*models.User
	conversations map[int64]*models.Conversation
	messages      map[int64]*models.Message
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:           time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         make(map[int64]*models.User),
		conversations: make(map[int64]*models.Conversation),
		messages:      make(map[int64]*models.Message),
	}
}

// tick advances the fake clock one second and returns the new time.
func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	f.nextUserID++
	user.ID = f.nextUserID
	user.CreatedAt = f.tick()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	for convID, conv := range f.conversations {
		if conv.UserID == id {
			delete(f.conversations, convID)
			for msgID, msg := range f.messages {
				if msg.ConversationID == convID {
					delete(f.messages, msgID)
				}
			}
		}
	}
	return nil
}

func (f *fakeStore) CreateConversation(ctx context.Context, arg store.CreateConversationParams) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConvID++
	now := f.tick()
	conv := &models.Conversation{
		ID:        f.nextConvID,
		UserID:    arg.UserID,
		Title:     arg.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.conversations[conv.ID] = conv
	cp := *conv
	return &cp, nil
}

func (f *fakeStore) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *conv
	return &cp, nil
}

func (f *fakeStore) ListConversations(ctx context.Context, userID int64) ([]models.ConversationListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var convs []*models.Conversation
	for _, conv := range f.conversations {
		if conv.UserID == userID {
			convs = append(convs, conv)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})

	items := make([]models.ConversationListItem, 0, len(convs))
	for _, conv := range convs {
		item := models.ConversationListItem{
			ID:        conv.ID,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		}
		if last := f.lastMessage(conv.ID); last != nil {
			preview := last.Content
			if len([]rune(preview)) > models.PreviewLength {
				preview = string([]rune(preview)[:models.PreviewLength])
			}
			item.LastMessagePreview = &preview
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeStore) lastMessage(conversationID int64) *models.Message {
	var last *models.Message
	for _, msg := range f.messages {
		if msg.ConversationID != conversationID {
			continue
		}
		if last == nil || msg.CreatedAt.After(last.CreatedAt) {
			last = msg
		}
	}
	return last
}

func (f *fakeStore) DeleteConversation(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.conversations[id]; !ok {
		return nil // deliberate no-op, matches the SQL DELETE
	}
	delete(f.conversations, id)
	for msgID, msg := range f.messages {
		if msg.ConversationID == id {
			delete(f.messages, msgID)
		}
	}
	return nil
}

func (f *fakeStore) RenameConversation(ctx context.Context, id int64, title string) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	conv.Title = title
	conv.UpdatedAt = f.tick()
	cp := *conv
	return &cp, nil
}

func (f *fakeStore) RenameConversationIfTitle(ctx context.Context, id int64, title, currentTitle string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok || conv.Title != currentTitle {
		return false, nil
	}
	conv.Title = title
	return true, nil
}

func (f *fakeStore) TouchConversation(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil
	}
	conv.UpdatedAt = f.tick()
	return nil
}

func (f *fakeStore) AddMessage(ctx context.Context, arg store.AddMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	msg := &models.Message{
		ID:             f.nextMsgID,
		ConversationID: arg.ConversationID,
		Role:           arg.Role,
		Content:        arg.Content,
		CreatedAt:      f.tick(),
	}
	f.messages[msg.ID] = msg
	cp := *msg
	return &cp, nil
}

func (f *fakeStore) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var msgs []models.Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			msgs = append(msgs, *msg)
		}
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
