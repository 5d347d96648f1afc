// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/constants"
	"github.com/taibuivan/nyan/internal/platform/ctxutil"
	"github.com/taibuivan/nyan/internal/platform/respond"
	"github.com/taibuivan/nyan/internal/platform/sec"
)

// TokenVerifier is implemented by [*sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// bearerToken returns the credential of an "Authorization: Bearer x"
// header. present is false when no header was sent at all.
func bearerToken(request *http.Request) (token string, present bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, credential, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(credential), true
}

// Authenticate attaches verified claims to the context. Requests without an
// Authorization header continue anonymously; a header that is present but
// malformed or fails verification is rejected with 401 rather than
// silently downgraded to anonymous.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, present := bearerToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}
			if token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth answers 401 unless [Authenticate] attached claims.
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(sec.RoleMember)(next)
}

// RequireRole answers 401 for anonymous callers and 403 for callers whose
// role ranks below role.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}
