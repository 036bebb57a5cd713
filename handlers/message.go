package handlers

import (
	"net/http"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/services"
)

// bodyOverhead is added on top of the encoded image size for the rest of the
// JSON body (text, field names).
const bodyOverhead = 64 << 10

// MessageHandler serves the one-to-one message endpoints.
type MessageHandler struct {
	messageService services.MessageService
	inboxService   services.InboxService
	maxBodySize    int64
}

// NewMessageHandler builds the handler. maxUploadSize is the decoded image
// limit; the accepted body size is derived from it.
func NewMessageHandler(
	messageService services.MessageService,
	inboxService services.InboxService,
	maxUploadSize int64,
) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		inboxService:   inboxService,
		// base64 grows data by 4/3
		maxBodySize: maxUploadSize*4/3 + bodyOverhead,
	}
}

// Sidebar godoc
// GET /api/messages/users
// Returns every other user plus the unseen counts per sender.
func (h *MessageHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	sidebar, err := h.inboxService.GetSidebar(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, sidebar)
}

// Conversation godoc
// GET /api/messages/{id}
// Returns the conversation with user {id}, translated for the caller, and
// marks the peer's messages as seen.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	views, err := h.inboxService.GetConversation(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, views)
}

// MarkSeen godoc
// PUT /api/messages/mark/{id}
func (h *MessageHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	if err := h.inboxService.MarkMessageSeen(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message marked as seen"})
}

// Send godoc
// POST /api/messages/send/{id}
// Body: { "text": "...", "image": "data:image/png;base64,..." }
// Responds 201 with the message as stored, untranslated.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if !decodeJSON(w, r, h.maxBodySize, &req) {
		return
	}

	message, err := h.messageService.Send(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}
