// internal/app/system/auth/middleware.go

package auth

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Actor is the authenticated caller injected into r.Context().
type Actor struct {
	ID    string
	Email string
	Role  string
}

// ObjectID parses the actor's id. A malformed id means the token was
// minted for something that is not an account.
func (a *Actor) ObjectID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.Unauthorized, "Invalid credentials", err)
	}
	return id, nil
}

type ctxKey string

const currentActorKey ctxKey = "currentActor"

// CurrentActor returns the caller from context and a "found?" flag.
func CurrentActor(r *http.Request) (*Actor, bool) {
	a, ok := r.Context().Value(currentActorKey).(*Actor)
	return a, ok
}

// ContextWithActor returns ctx carrying the given caller. Exposed for
// handler tests that bypass the middleware chain.
func ContextWithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, currentActorKey, a)
}

func withActor(r *http.Request, a *Actor) *http.Request {
	return r.WithContext(ContextWithActor(r.Context(), a))
}

// bearerToken extracts the token from an "Authorization: Bearer ..."
// header. Empty string means no credential was presented.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// LoadActor injects the caller into context when a valid token is
// presented. Requests without a token pass through anonymously; the
// Require* middleware below decides whether that is acceptable.
func (m *Manager) LoadActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := m.Validate(token); err == nil {
				r = withActor(r, &Actor{
					ID:    claims.UserID,
					Email: claims.Email,
					Role:  claims.Role,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is an actor in context (set by
// LoadActor). Anonymous callers get a 401 with the failure envelope.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentActor(r); !ok {
			httpjson.Fail(w, nil, apperr.New(apperr.Unauthorized, "Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the actor holds one of the allowed roles.
// Anonymous callers get 401, wrong-role callers get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := CurrentActor(r)
			if !ok {
				httpjson.Fail(w, nil, apperr.New(apperr.Unauthorized, "Authentication required"))
				return
			}
			if _, allowed := set[strings.ToLower(a.Role)]; !allowed {
				httpjson.Fail(w, nil, apperr.New(apperr.Forbidden, "Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireMasterAdmin gates account-administration routes.
func RequireMasterAdmin(next http.Handler) http.Handler {
	return RequireRole(models.RoleMasterAdmin)(next)
}
