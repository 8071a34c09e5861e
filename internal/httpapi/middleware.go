package httpapi

import (
	"context"
	"net/http"

	"github.com/davancensm/Case36-TercerEntrega/internal/session"
)

type ctxKey int

const sessionKey ctxKey = iota

// SessionMiddleware resolves the signed cookie into a session record
// and attaches it to the request context. Requests without a valid
// session pass through unauthenticated; handlers decide what that
// means.
func SessionMiddleware(store session.Store, codec *session.CookieCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := codec.Read(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Get(r.Context(), id)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext returns the authenticated session, or nil.
func sessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
