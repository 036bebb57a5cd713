package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akinalp/quickchat/mocks"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/cache"
	"github.com/akinalp/quickchat/pkg/logger"
)

func storeMessage(t *testing.T, s testStore, from, to, text string) *models.Message {
	t.Helper()
	m := &models.Message{ID: uuid.NewString(), SenderID: from, ReceiverID: to, Text: &text}
	require.NoError(t, s.messages.Create(context.Background(), m))
	return m
}

func TestInboxService_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("should translate only messages addressed to the requester", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		store := newTestStore(t)
		inbox := NewInboxService(store.messages, store.users, NewTranslationService(backend, logger.Discard()), nil, logger.Discard())

		r := store.createUser(t, "reader", "en")
		p := store.createUser(t, "peer", "es")
		storeMessage(t, store, p.ID, r.ID, "Hola")
		storeMessage(t, store, r.ID, p.ID, "Hi there")
		storeMessage(t, store, p.ID, r.ID, "Adiós")
		img := "/api/uploads/x.png"
		imageOnly := &models.Message{ID: uuid.NewString(), SenderID: p.ID, ReceiverID: r.ID, Image: &img}
		req.NoError(store.messages.Create(ctx, imageOnly))

		backend.EXPECT().Detect(gomock.Any(), "Hola").Return("es", nil)
		backend.EXPECT().Detect(gomock.Any(), "Adiós").Return("es", nil)
		backend.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("Hello", nil)
		backend.EXPECT().Translate(gomock.Any(), "Adiós", "es", "en").Return("", errBackendDown)

		views, err := inbox.GetConversation(ctx, r.ID, p.ID)
		req.NoError(err)
		req.Len(views, 4)

		req.Equal("Hello", *views[0].Text)
		req.True(views[0].IsTranslated)
		req.Equal("Hi there", *views[1].Text)
		req.False(views[1].IsTranslated)
		req.Equal("Adiós", *views[2].Text, "a failed translation falls back to the original")
		req.False(views[2].IsTranslated)
		req.Nil(views[3].Text)

		counts, err := store.messages.CountUnseenBySender(ctx, r.ID)
		req.NoError(err)
		req.Empty(counts)

		counts, err = store.messages.CountUnseenBySender(ctx, p.ID)
		req.NoError(err)
		req.Equal(map[string]int{r.ID: 1}, counts, "the requester's own messages stay unseen")
	})

	t.Run("should memoize translations when a cache is configured", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		store := newTestStore(t)
		memo := cache.NewTranslationMemo(time.Minute, time.Hour)
		defer memo.Close()
		inbox := NewInboxService(store.messages, store.users, NewTranslationService(backend, logger.Discard()), memo, logger.Discard())

		r := store.createUser(t, "reader", "en")
		p := store.createUser(t, "peer", models.LanguageDefault)
		m := storeMessage(t, store, p.ID, r.ID, "Hola")

		backend.EXPECT().Detect(gomock.Any(), "Hola").Return("es", nil).Times(1)
		backend.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("Hello", nil).Times(1)

		for i := 0; i < 3; i++ {
			views, err := inbox.GetConversation(ctx, r.ID, p.ID)
			req.NoError(err)
			req.Equal("Hello", *views[0].Text)
		}

		cached, ok := memo.Lookup(m.ID, "en")
		req.True(ok)
		req.Equal("Hello", cached)
	})

	t.Run("should ask the backend again after a failed translation", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		store := newTestStore(t)
		memo := cache.NewTranslationMemo(time.Minute, time.Hour)
		defer memo.Close()
		inbox := NewInboxService(store.messages, store.users, NewTranslationService(backend, logger.Discard()), memo, logger.Discard())

		r := store.createUser(t, "reader", "en")
		p := store.createUser(t, "peer", models.LanguageDefault)
		storeMessage(t, store, p.ID, r.ID, "Hola")

		backend.EXPECT().Detect(gomock.Any(), "Hola").Return("es", nil).Times(2)
		gomock.InOrder(
			backend.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("", errBackendDown),
			backend.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("Hello", nil),
		)

		views, err := inbox.GetConversation(ctx, r.ID, p.ID)
		req.NoError(err)
		req.Equal("Hola", *views[0].Text)
		req.Zero(memo.Len())

		views, err = inbox.GetConversation(ctx, r.ID, p.ID)
		req.NoError(err)
		req.Equal("Hello", *views[0].Text)
		req.Equal(1, memo.Len())
	})

	t.Run("should fail when seen-marking fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		messages := mocks.NewMockMessageRepository(ctrl)
		inbox := NewInboxService(messages, users, NewTranslationService(mocks.NewMockBackend(ctrl), logger.Discard()), nil, logger.Discard())

		errDisk := errors.New("disk I/O error")
		users.EXPECT().GetByID(gomock.Any(), "r").Return(&models.User{ID: "r", PreferredLanguage: models.LanguageDefault}, nil)
		messages.EXPECT().FindConversation(gomock.Any(), "r", "p").Return([]models.Message{}, nil)
		messages.EXPECT().MarkConversationSeen(gomock.Any(), "p", "r").Return(int64(0), errDisk)

		_, err := inbox.GetConversation(ctx, "r", "p")
		req.ErrorIs(err, errDisk)
	})
}

func TestInboxService_MarkMessageSeen(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestStore(t)
	inbox := NewInboxService(store.messages, store.users, nil, nil, logger.Discard())

	r := store.createUser(t, "reader", models.LanguageDefault)
	p := store.createUser(t, "peer", models.LanguageDefault)
	m := storeMessage(t, store, p.ID, r.ID, "hi")

	req.NoError(inbox.MarkMessageSeen(ctx, m.ID))
	req.NoError(inbox.MarkMessageSeen(ctx, m.ID))
	req.NoError(inbox.MarkMessageSeen(ctx, "does-not-exist"))

	stored, err := store.messages.GetByID(ctx, m.ID)
	req.NoError(err)
	req.True(stored.Seen)
}

func TestInboxService_GetSidebar(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestStore(t)
	inbox := NewInboxService(store.messages, store.users, nil, nil, logger.Discard())

	r := store.createUser(t, "requester", models.LanguageDefault)
	p := store.createUser(t, "p", models.LanguageDefault)
	q := store.createUser(t, "q", models.LanguageDefault)
	for i := 0; i < 3; i++ {
		storeMessage(t, store, p.ID, r.ID, "ping")
	}
	storeMessage(t, store, r.ID, q.ID, "outgoing only")

	sidebar, err := inbox.GetSidebar(ctx, r.ID)
	req.NoError(err)
	req.Equal(map[string]int{p.ID: 3}, sidebar.UnseenMessages)
	req.NotContains(sidebar.UnseenMessages, q.ID)
	req.Len(sidebar.Users, 2)

	_, err = inbox.GetConversation(ctx, r.ID, p.ID)
	req.NoError(err)

	sidebar, err = inbox.GetSidebar(ctx, r.ID)
	req.NoError(err)
	req.Empty(sidebar.UnseenMessages)
}
