package localauth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-signup/pkg/authclient"
	"github.com/goliatone/go-signup/pkg/signup"
)

const maxBody = 1 << 20

// Handler exposes the service at POST /sign-up using the JSON contract of
// pkg/authclient.
type Handler struct {
	auth   signup.AuthClient
	logger *slog.Logger
}

// NewHandler wraps auth. A nil logger falls back to slog.Default.
func NewHandler(auth signup.AuthClient, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post(authclient.SignUpPath, h.handleSignUp)
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var values signup.Values
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&values); err != nil {
		h.logger.WarnContext(ctx, "invalid sign up request", "error", err.Error())
		writeJSON(w, http.StatusBadRequest, authclient.ErrorResponse{Message: "invalid request body"})
		return
	}

	sess, err := h.auth.SignUp(ctx, values)
	if err != nil {
		var authErr *signup.AuthError
		if errors.As(err, &authErr) {
			writeJSON(w, http.StatusUnprocessableEntity, authclient.ErrorResponse{
				Message: authErr.Message,
				Errors:  authErr.Fields,
			})
			return
		}
		h.logger.ErrorContext(ctx, "sign up failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, authclient.ErrorResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
