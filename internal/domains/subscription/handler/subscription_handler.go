package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanwanruwoxin/my-zero2prod/internal/domains/subscription"
	"github.com/wanwanruwoxin/my-zero2prod/internal/shared/response"
)

// SubscriptionHandler is the thin HTTP layer over the subscription
// workflow. Failures are logged at their origin in the service; here
// they only get translated to status codes with generic bodies.
type SubscriptionHandler struct {
	service subscription.Service
}

func NewSubscriptionHandler(service subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Subscribe handles POST /subscriptions (urlencoded form).
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	// A field absent from the form is a transport problem, reported
	// before any validation runs.
	name, hasName := c.GetPostForm("name")
	mail, hasEmail := c.GetPostForm("email")
	if !hasName || !hasEmail {
		response.UnprocessableEntity(c, "name and email are required fields")
		return
	}

	req := subscription.SubscribeRequest{Name: name, Email: mail}
	sub, err := req.ToNewSubscriber()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), sub); err != nil {
		response.InternalServerError(c, "failed to create subscription")
		return
	}

	c.Status(http.StatusOK)
}

// Confirm handles GET /subscriptions/confirm.
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	confirmationToken := c.Query("subscription_token")
	if confirmationToken == "" {
		response.Unauthorized(c, "invalid subscription token")
		return
	}

	if err := h.service.Confirm(c.Request.Context(), confirmationToken); err != nil {
		if errors.Is(err, subscription.ErrUnknownToken) {
			response.Unauthorized(c, "invalid subscription token")
			return
		}
		response.InternalServerError(c, "failed to confirm subscription")
		return
	}

	c.Status(http.StatusOK)
}
