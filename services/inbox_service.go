package services

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/cache"
	"github.com/akinalp/quickchat/repository"
)

// translateParallelism caps concurrent backend calls per conversation read.
const translateParallelism = 8

// InboxService is the read path: conversations, seen flags and sidebar counts.
type InboxService interface {
	// GetConversation returns the messages between requester and peer in
	// insertion order, with messages addressed to the requester translated
	// into the requester's language. Afterwards every peer -> requester
	// message is marked seen.
	GetConversation(ctx context.Context, requesterID, peerID string) ([]models.MessageView, error)

	// MarkMessageSeen flags one message as seen. Unknown ids are a no-op.
	MarkMessageSeen(ctx context.Context, messageID string) error

	GetSidebar(ctx context.Context, requesterID string) (*models.Sidebar, error)
}

type inboxService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	translation TranslationService

	// memo may be nil (disabled).
	memo *cache.TranslationMemo
	log  *slog.Logger
}

// NewInboxService builds the read path. memo may be nil.
func NewInboxService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	translation TranslationService,
	memo *cache.TranslationMemo,
	log *slog.Logger,
) InboxService {
	return &inboxService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		translation: translation,
		memo:        memo,
		log:         log.With("component", "inbox"),
	}
}

func (s *inboxService) GetConversation(ctx context.Context, requesterID, peerID string) ([]models.MessageView, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindConversation(ctx, requesterID, peerID)
	if err != nil {
		return nil, err
	}

	views := lo.Map(messages, func(m models.Message, _ int) models.MessageView {
		return models.ViewOf(m)
	})

	lang := requester.PreferredLanguage
	var g errgroup.Group
	g.SetLimit(translateParallelism)

	for i := range messages {
		m := &messages[i]
		if m.ReceiverID != requesterID || !wantsTranslation(m, lang) {
			continue
		}
		// Each goroutine owns views[i]; a failed translation only affects it.
		g.Go(func() error {
			views[i] = views[i].WithText(s.translate(ctx, m, lang))
			return nil
		})
	}
	_ = g.Wait()

	if _, err := s.messageRepo.MarkConversationSeen(ctx, peerID, requesterID); err != nil {
		return nil, err
	}

	return views, nil
}

func (s *inboxService) translate(ctx context.Context, m *models.Message, lang string) string {
	if text, ok := s.memo.Lookup(m.ID, lang); ok {
		return text
	}

	text := s.translation.Translate(ctx, *m.Text, lang, "")
	s.memo.Remember(m.ID, lang, *m.Text, text)
	return text
}

func (s *inboxService) MarkMessageSeen(ctx context.Context, messageID string) error {
	return s.messageRepo.MarkSeenByID(ctx, messageID)
}

func (s *inboxService) GetSidebar(ctx context.Context, requesterID string) (*models.Sidebar, error) {
	users, err := s.userRepo.ListExcept(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	counts, err := s.messageRepo.CountUnseenBySender(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	known := lo.KeyBy(users, func(u models.User) string { return u.ID })
	unseen := lo.PickBy(counts, func(senderID string, n int) bool {
		_, ok := known[senderID]
		return ok && n > 0
	})

	return &models.Sidebar{Users: users, UnseenMessages: unseen}, nil
}
