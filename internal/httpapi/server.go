// Package httpapi exposes the library, favorites, radar and account
// services over JSON HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"melodex/internal/app/radar"
	"melodex/internal/models"
	"melodex/internal/store"
)

// UserService covers account registration and login.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// LibraryService covers the aggregated read surface.
type LibraryService interface {
	Items(ctx context.Context, userID int64, itemType, search string) ([]models.Item, error)
	MusicLists(ctx context.Context, userID int64, listType, search string) ([]models.Item, error)
	User(ctx context.Context, userID int64) (*models.User, []models.Item, error)
}

// FavoritesService covers the authenticated ownership mutations.
type FavoritesService interface {
	AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
	UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
}

// RadarService computes recent releases from followed singers.
type RadarService interface {
	NewReleases(ctx context.Context, userID int64) ([]models.Song, error)
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Server routes HTTP requests to the application services.
type Server struct {
	users     UserService
	library   LibraryService
	favorites FavoritesService
	radar     RadarService
	tokens    TokenVerifier
}

// NewServer builds a Server from its collaborating services.
func NewServer(users UserService, library LibraryService, favorites FavoritesService, radarSvc RadarService, tokens TokenVerifier) *Server {
	return &Server{
		users:     users,
		library:   library,
		favorites: favorites,
		radar:     radarSvc,
		tokens:    tokens,
	}
}

// Routes returns the full API mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/v1/users/{id}", s.handleGetUser)
	mux.HandleFunc("GET /api/v1/users/{id}/items", s.handleGetItems)
	mux.HandleFunc("GET /api/v1/users/{id}/musiclists", s.handleGetMusicLists)
	mux.HandleFunc("GET /api/v1/users/{id}/releases", s.handleGetReleases)

	mux.HandleFunc("PUT /api/v1/me/musiclists/{id}", s.handleAddFavorite)
	mux.HandleFunc("DELETE /api/v1/me/musiclists/{id}", s.handleRemoveFavorite)
	mux.HandleFunc("PUT /api/v1/me/singers/{id}", s.handleFollowSinger)
	mux.HandleFunc("DELETE /api/v1/me/singers/{id}", s.handleUnfollowSinger)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		errorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := s.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

type userResponse struct {
	User  *models.User  `json:"user"`
	Items []models.Item `json:"items"`
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	user, items, err := s.library.User(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user, Items: items})
}

func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	items, err := s.library.Items(r.Context(), userID, r.URL.Query().Get("type"), r.URL.Query().Get("search"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Item{"items": items})
}

func (s *Server) handleGetMusicLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	items, err := s.library.MusicLists(r.Context(), userID, r.URL.Query().Get("type"), r.URL.Query().Get("search"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Item{"items": items})
}

func (s *Server) handleGetReleases(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	songs, err := s.radar.NewReleases(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Song{"songs": songs})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	s.handleFavoriteMutation(w, r, s.favorites.AddFavoriteMusicList)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	s.handleFavoriteMutation(w, r, s.favorites.RemoveFavoriteMusicList)
}

func (s *Server) handleFollowSinger(w http.ResponseWriter, r *http.Request) {
	s.handleFavoriteMutation(w, r, s.favorites.FollowSinger)
}

func (s *Server) handleUnfollowSinger(w http.ResponseWriter, r *http.Request) {
	s.handleFavoriteMutation(w, r, s.favorites.UnfollowSinger)
}

func (s *Server) handleFavoriteMutation(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64) (*models.User, error)) {
	targetID, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := op(r.Context(), s.callerID(r), targetID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// callerID extracts the authenticated user id from the Authorization
// header. Missing or invalid tokens yield zero; the services decide
// whether that matters.
func (s *Server) callerID(r *http.Request) int64 {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return 0
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return 0
	}
	return id
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		errorResponse(w, status, "internal server error")
		return
	}
	errorResponse(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrUnauthenticated),
		errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrMusicListNotFound),
		errors.Is(err, store.ErrSingerNotFound),
		errors.Is(err, store.ErrFavoriteNotFound),
		errors.Is(err, store.ErrNotFollowing),
		errors.Is(err, radar.ErrNoFollowedSingers):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrFavoriteExists),
		errors.Is(err, store.ErrAlreadyFollowing):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
