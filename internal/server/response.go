package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/llm"
)

type apiError struct {
	Message        string `json:"message"`
	Code           string `json:"code,omitempty"`
	Reason         string `json:"reason,omitempty"`
	SuggestedTopic string `json:"suggested_topic,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func abortWith(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// statusFor maps an error kind to an HTTP status and error code. LLM
// timeouts get their own status.
func statusFor(err error) (int, string) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound, kind.String()
	case apperr.KindUnauthorized:
		return http.StatusForbidden, kind.String()
	case apperr.KindAlreadyCompleted:
		return http.StatusConflict, kind.String()
	case apperr.KindTopicRejected:
		return http.StatusUnprocessableEntity, kind.String()
	case apperr.KindInvalidInput:
		return http.StatusBadRequest, kind.String()
	case apperr.KindGenerationFailure:
		var timeout *llm.ErrTimeout
		if errors.As(err, &timeout) {
			return http.StatusGatewayTimeout, "generation_timeout"
		}
		return http.StatusBadGateway, kind.String()
	default:
		return http.StatusInternalServerError, kind.String()
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	body := apiError{Message: err.Error(), Code: code}

	if rej, ok := apperr.RejectionOf(err); ok {
		body.Message = "topic is not appropriate for this level"
		body.Reason = rej.Reason
		body.SuggestedTopic = rej.SuggestedTopic
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
		if status == http.StatusInternalServerError {
			body.Message = "internal error"
		}
	}
	c.AbortWithStatusJSON(status, errorEnvelope{Error: body})
}
