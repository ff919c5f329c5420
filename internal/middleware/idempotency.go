package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"

	maxIdempotencyKeyLen = 255
)

// bodyCaptureWriter tees the response body so it can be stored.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// hashBody reads the request body, puts it back for the handler and returns
// its hex SHA-256.
func hashBody(c *gin.Context) (string, error) {
	if c.Request.Body == nil {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:]), nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key already used by the same user. A repeat with another route
// gets 409 and a repeat with another body gets 422. Requests without the
// header pass through. Only non-5xx responses are stored so failed attempts
// can be retried. Two concurrent requests with the same new key both execute.
func Idempotency(repo portsrepo.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("idempotency_key", key))

		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is too long"})
			return
		}
		userID, _ := GetUserIDFromContext(c)
		path := c.Request.Method + " " + c.Request.URL.Path
		bodyHash, err := hashBody(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}

		rec, err := repo.FindIdempotencyRecord(c.Request.Context(), key, userID)
		switch {
		case err == nil:
			if rec.RequestPath != path {
				logger.Warn("Idempotency key reused for a different request", slog.String("stored_path", rec.RequestPath))
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Idempotency-Key was already used for a different request"})
				return
			}
			// rows stored before request hashing have an empty hash and still replay
			if rec.RequestHash != "" && rec.RequestHash != bodyHash {
				logger.Warn("Idempotency key reused with a different body")
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Idempotency-Key was already used with a different request body"})
				return
			}
			logger.Info("Replaying stored response", slog.Int("status", rec.ResponseStatus))
			c.Header(IdempotencyHitHeader, "true")
			c.Data(rec.ResponseStatus, "application/json; charset=utf-8", rec.ResponseBody)
			c.Abort()
			return
		case !errors.Is(err, apperrors.ErrNotFound):
			logger.Error("Failed to look up idempotency key", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary storage failure, please retry"})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		saveErr := repo.SaveIdempotencyRecord(context.WithoutCancel(c.Request.Context()), portsrepo.IdempotencyRecord{
			Key:            key,
			UserID:         userID,
			RequestPath:    path,
			RequestHash:    bodyHash,
			ResponseStatus: status,
			ResponseBody:   writer.body.Bytes(),
		})
		if saveErr != nil {
			logger.Error("Failed to store idempotent response", slog.String("error", saveErr.Error()))
		}
	}
}
