package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"peako/config"
	"peako/core/auth"
	"peako/core/media"
	"peako/core/soundcloud"
	"peako/repository"
)

// APIHandler 处理所有API请求
type APIHandler struct {
	trackRepo   repository.TrackRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
	mediaRepo   *repository.MediaRepository
	aboutRepo   *repository.AboutRepository
	ingestor    *media.Ingestor
	extractor   *soundcloud.Extractor
	cfg         *config.Config
}

// NewAPIHandler 创建新的API处理器
func NewAPIHandler(
	trackRepo repository.TrackRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	contactRepo repository.ContactRepository,
	mediaRepo *repository.MediaRepository,
	aboutRepo *repository.AboutRepository,
	ingestor *media.Ingestor,
	extractor *soundcloud.Extractor,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		trackRepo:   trackRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
		mediaRepo:   mediaRepo,
		aboutRepo:   aboutRepo,
		ingestor:    ingestor,
		extractor:   extractor,
		cfg:         cfg,
	}
}

type contextKey string

const (
	ctxUserID   contextKey = "userID"
	ctxUsername contextKey = "username"
)

// respondJSON 输出JSON响应
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError 输出统一格式的错误响应
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// AuthMiddleware is a middleware function that checks for a valid JWT token
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requestAuthenticated 判断请求是否带有效的Bearer token。
// 公开接口用它决定是否放开 ?all=true 这类管理端参数。
func requestAuthenticated(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	_, err := auth.ParseToken(parts[1])
	return err == nil
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(ctxUserID).(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the username from the request context
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(ctxUsername).(string)
	if !ok {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}
