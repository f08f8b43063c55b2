package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ilyasseisov/flashcards/internal/services"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

// WebhookHandler mirrors identity-provider user lifecycle events into the
// local user table. Payloads are svix-signed by the provider.
type WebhookHandler struct {
	userService *services.UserService
	verifier    *svix.Webhook
}

func NewWebhookHandler(userService *services.UserService, secret string) *WebhookHandler {
	h := &WebhookHandler{userService: userService}
	if secret == "" {
		log.Println("IDENTITY_WEBHOOK_SECRET not set, identity webhook disabled")
		return h
	}

	verifier, err := svix.NewWebhook(secret)
	if err != nil {
		log.Printf("webhook: invalid signing secret: %v", err)
		return h
	}
	h.verifier = verifier
	return h
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleIdentityEvent godoc
// @Summary      Identity lifecycle webhook
// @Description  Svix-verified user.created / user.updated / user.deleted events from the identity provider
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Success      200 {string} string "handled"
// @Failure      400 {string} string "bad signature or payload"
// @Failure      500 {string} string "database failure"
// @Router       /api/webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	if h.verifier == nil {
		c.String(http.StatusServiceUnavailable, "webhook not configured")
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable payload")
		return
	}

	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		c.String(http.StatusBadRequest, "invalid signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	externalID := event.Data.ID
	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	switch event.Type {
	case "user.created", "user.updated":
		if externalID == "" || email == "" {
			c.String(http.StatusBadRequest, "missing user data in webhook payload")
			return
		}
		var syncErr error
		if event.Type == "user.created" {
			_, syncErr = h.userService.SyncCreated(externalID, email)
		} else {
			_, syncErr = h.userService.SyncUpdated(externalID, email)
		}
		if syncErr != nil {
			log.Printf("webhook: %s sync failed for %s: %v", event.Type, externalID, syncErr)
			c.String(http.StatusInternalServerError, "database operation failed")
			return
		}
		c.String(http.StatusOK, "user synced")

	case "user.deleted":
		if externalID == "" {
			c.String(http.StatusBadRequest, "missing user id in webhook payload")
			return
		}
		found, err := h.userService.SyncDeleted(externalID)
		if err != nil {
			log.Printf("webhook: delete sync failed for %s: %v", externalID, err)
			c.String(http.StatusInternalServerError, "database operation failed")
			return
		}
		if !found {
			// Already gone; deliveries can repeat.
			c.String(http.StatusOK, "user not found")
			return
		}
		c.String(http.StatusOK, "user deleted")

	default:
		log.Printf("webhook: unhandled event type %s", event.Type)
		c.String(http.StatusOK, "event type not handled")
	}
}
