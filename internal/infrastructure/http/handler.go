package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
	"github.com/dwern/portfolio-chat/internal/domain/ports"
	"github.com/dwern/portfolio-chat/internal/domain/usecases"
	"github.com/dwern/portfolio-chat/internal/observability"
)

// genericFailure hides backend details from the client. The specific cause is
// logged server side.
const genericFailure = "Oops! My brain is cloud-gazing right now ☁️. Please try asking me again in a moment."

// handleChat validates the transcript, short-circuits local intents and
// otherwise streams the generated answer as plain text. Action tags are left
// embedded in the stream for the client to extract; the ?stream=false variant
// returns them pre-extracted as JSON.
func (s *Server) handleChat(c *gin.Context) {
	var req entities.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}
	// The cap counts characters, not bytes; multi-byte input gets the
	// same allowance as ASCII.
	maxLen := s.cfg.Retrieval.MaxMessageLen
	if maxLen > 0 && utf8.RuneCountInString(last.Content) > maxLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Message too long (max %d characters)", maxLen),
		})
		return
	}

	if msgs := s.chat.LocalReply(last.Content); msgs != nil {
		// Small delay so the canned reply does not feel instantaneous.
		select {
		case <-time.After(s.cfg.Retrieval.LocalReplyDelay):
		case <-c.Request.Context().Done():
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
		return
	}

	ctx := c.Request.Context()
	log := observability.LoggerFromContext(ctx)

	stream, err := s.chat.Respond(ctx, req.Messages)
	if err != nil {
		log.Error("chat pipeline failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
		return
	}

	if c.Query("stream") == "false" {
		s.writeBuffered(c, stream)
		return
	}
	s.writeStream(c, stream)
}

// writeStream relays chunks as they arrive, flushing after each one. Once the
// first byte is out the status is committed, so a mid-stream failure is logged
// and the connection closed cleanly with whatever was already sent.
func (s *Server) writeStream(c *gin.Context, stream <-chan ports.StreamToken) {
	log := observability.LoggerFromContext(c.Request.Context())

	// Hold the status until the first chunk so a failure on the very first
	// token can still surface as a 500.
	first, ok := <-stream
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
		return
	}
	if first.Error != nil {
		log.Error("generation failed before first chunk", "error", first.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	if first.Content != "" {
		c.Writer.WriteString(first.Content)
		c.Writer.Flush()
	}
	for token := range stream {
		if token.Error != nil {
			log.Error("generation failed mid-stream", "error", token.Error)
			return
		}
		if token.Content == "" {
			continue
		}
		c.Writer.WriteString(token.Content)
		c.Writer.Flush()
	}
}

// writeBuffered accumulates the whole response, strips the action tags from
// the visible text and returns the first tag as a structured action.
func (s *Server) writeBuffered(c *gin.Context, stream <-chan ports.StreamToken) {
	var b strings.Builder
	for token := range stream {
		if token.Error != nil {
			observability.LoggerFromContext(c.Request.Context()).Error("generation failed", "error", token.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
			return
		}
		b.WriteString(token.Content)
	}

	full := b.String()
	c.JSON(http.StatusOK, gin.H{
		"reply":  strings.TrimSpace(usecases.StripActionTags(full)),
		"action": usecases.ExtractActionTag(full),
	})
}
