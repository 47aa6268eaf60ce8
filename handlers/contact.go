package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invirogens/website/internal/relay"
	"github.com/invirogens/website/internal/schema"
	"github.com/invirogens/website/pkg/logger"
	"github.com/invirogens/website/pkg/metrics"
	"github.com/invirogens/website/pkg/middleware"
)

// CreateContact validates, stores and relays an inquiry.
// The stored record is returned with 201 even when the relay fails.
func (h *SiteHandler) CreateContact(c *gin.Context) {
	var in schema.InsertContact
	if err := c.ShouldBindJSON(&in); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid form data",
			"errors":  []schema.FieldError{{Field: "body", Rule: "json", Message: err.Error()}},
		})
		return
	}
	if err := schema.ValidateInsertContact(in); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data", "errors": ve.Fields})
			return
		}
		logger.Errorf("validate contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	msg := h.store.CreateContactMessage(in)
	metrics.ContactSubmissions.WithLabelValues("stored").Inc()

	if h.relay != nil {
		// the relay bounds its own duration; a client disconnect must not abort delivery
		ctx := context.WithoutCancel(c.Request.Context())
		if err := h.relay.Send(ctx, in); err != nil {
			if errors.Is(err, relay.ErrNoChannel) {
				logger.Warnf("contact %d stored but not relayed: %v", msg.ID, err)
			} else {
				logger.Errorf("contact %d relay failed (request_id=%s): %v", msg.ID, middleware.GetRequestID(c), err)
			}
		}
	}

	c.JSON(http.StatusCreated, msg)
}
