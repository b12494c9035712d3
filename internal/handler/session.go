package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/richdynamix/similarproducts/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session_id"

const sessionCookie = "sp_session"

// EnsureSession resolves the visitor's session ID from the storefront
// session header or cookie, assigning a fresh one when the request
// carries neither.
func EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get("X-Session-ID")
		if sid == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionContextKey).(string)
	return sid
}

// identity builds the caller's identity. The storefront fronts this
// service and passes the authenticated customer, if any, in a header;
// authentication itself stays the storefront's business.
func identity(r *http.Request) domain.Identity {
	id := domain.Identity{SessionID: sessionID(r)}
	if v := r.Header.Get("X-Customer-ID"); v != "" {
		if cid, err := strconv.ParseInt(v, 10, 64); err == nil && cid > 0 {
			id.CustomerID = cid
		}
	}
	return id
}
