// Package services holds the business logic between the HTTP handlers and
// the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/repository"
	"github.com/akinalp/quickchat/ws"
)

// MessageService is the send path.
type MessageService interface {
	// Send persists a message from senderID to receiverID and returns it
	// exactly as stored. The receiver's translated copy is pushed in the
	// background; Send does not wait for it.
	Send(ctx context.Context, senderID, receiverID string, req *models.SendMessageRequest) (*models.Message, error)

	// Wait blocks until every background delivery has finished.
	Wait()
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	translation TranslationService
	assets      AssetStore
	notifier    ws.Notifier

	deliveryTimeout time.Duration
	inflight        sync.WaitGroup
	log             *slog.Logger

	// queuesMu guards queues. A receiver has an entry only while its
	// delivery goroutine is running.
	queuesMu sync.Mutex
	queues   map[string]*deliveryQueue
}

// delivery is one pending translate-and-push for a stored message.
type delivery struct {
	msg  models.Message
	lang string
}

// deliveryQueue holds the deliveries of one receiver in submission order.
type deliveryQueue struct {
	pending []delivery
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	translation TranslationService,
	assets AssetStore,
	notifier ws.Notifier,
	deliveryTimeout time.Duration,
	log *slog.Logger,
) MessageService {
	return &messageService{
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		translation:     translation,
		assets:          assets,
		notifier:        notifier,
		deliveryTimeout: deliveryTimeout,
		log:             log.With("component", "messages"),
		queues:          make(map[string]*deliveryQueue),
	}
}

// Send runs the send path:
//
//  1. validate the request, resolve the receiver (unknown -> ErrNotFound,
//     nothing stored)
//  2. upload the image, if any; a failed upload aborts the send
//  3. persist the message with the original text, seen=false
//  4. queue the translate-and-push for the receiver and return the stored
//     message to the sender
//
// Step 4 never affects what is stored or returned: the sender's response is
// the original record whether or not the push later succeeds.
func (s *messageService) Send(ctx context.Context, senderID, receiverID string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiver not found", pkg.ErrNotFound)
		}
		return nil, err
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	// Text is stored exactly as sent; blank text is only skipped for
	// translation (Message.HasText).
	if req.Text != "" {
		text := req.Text
		msg.Text = &text
	}

	if req.Image != "" {
		ref, err := s.assets.Upload(ctx, req.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		msg.Image = &ref
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.enqueue(delivery{msg: *msg, lang: receiver.PreferredLanguage})

	return msg, nil
}

func (s *messageService) Wait() {
	s.inflight.Wait()
}

// enqueue appends d to its receiver's queue, starting a drain goroutine when
// the receiver has none.
//
// Translation time varies per message: a text
// that needs a backend round trip would otherwise be pushed after a later
// image-only message. Draining one receiver's deliveries on a single
// goroutine keeps pushes in the order the messages were stored, while
// different receivers still deliver in parallel. The queue lives only as
// long as it has work; an idle receiver costs nothing.
func (s *messageService) enqueue(d delivery) {
	s.inflight.Add(1)

	s.queuesMu.Lock()
	q, running := s.queues[d.msg.ReceiverID]
	if !running {
		q = &deliveryQueue{}
		s.queues[d.msg.ReceiverID] = q
	}
	q.pending = append(q.pending, d)
	s.queuesMu.Unlock()

	if !running {
		go s.drain(d.msg.ReceiverID, q)
	}
}

// drain delivers q's entries one by one and removes q from the map once it
// is empty. The emptiness check and the removal happen under the same lock as
// enqueue's append, so no delivery is left behind in a dropped queue.
func (s *messageService) drain(receiverID string, q *deliveryQueue) {
	for {
		s.queuesMu.Lock()
		if len(q.pending) == 0 {
			delete(s.queues, receiverID)
			s.queuesMu.Unlock()
			return
		}
		d := q.pending[0]
		q.pending = q.pending[1:]
		s.queuesMu.Unlock()

		s.deliver(d)
		s.inflight.Done()
	}
}

// deliver translates one message for its receiver and pushes it if the
// receiver is online, bounded by deliveryTimeout. It runs detached from the
// request context. A panic is logged and contained to this delivery.
func (s *messageService) deliver(d delivery) {
	msg := d.msg
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("delivery panicked", "message_id", msg.ID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.deliveryTimeout)
	defer cancel()

	view := models.ViewOf(msg)
	if wantsTranslation(&msg, d.lang) {
		view = view.WithText(s.translation.Translate(ctx, *msg.Text, d.lang, ""))
	}

	// Live push is best effort: the message is already stored and an
	// offline or saturated receiver gets it on the next conversation fetch.
	// This is the only place the push error is dropped.
	if err := s.notifier.SendToUser(msg.ReceiverID, ws.Event{Op: ws.OpNewMessage, Data: view}); err != nil {
		s.log.Debug("live push skipped", "message_id", msg.ID, "receiver_id", msg.ReceiverID, "error", err)
	}
}
