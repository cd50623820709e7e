package http

import (
	"context"
	"net/http"
	"strconv"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/security"
	"homestay-backend/internal/service"

	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "claims"

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the authenticated caller set by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// actingUser resolves the user a request acts for. An empty requested id
// means the caller; acting for someone else is reserved to admins.
func actingUser(r *http.Request, requested string) (string, error) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return "", service.ErrUnauthorized
	}
	if requested == "" || requested == claims.UserID {
		return claims.UserID, nil
	}
	if claims.Role == string(domain.UserRoleAdmin) {
		return requested, nil
	}
	return "", service.ErrUnauthorized
}

// callerActor turns the authenticated claims into a service actor.
func callerActor(r *http.Request) (service.Actor, error) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return service.Actor{}, service.ErrUnauthorized
	}
	return service.Actor{UserID: claims.UserID, Admin: claims.Role == string(domain.UserRoleAdmin)}, nil
}

func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func queryID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}
