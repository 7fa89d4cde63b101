package middleware

import (
	"context"
	"strings"

	"github.com/clanbase/backend/pkg/errorx"
	"github.com/clanbase/backend/pkg/router"
	"github.com/clanbase/backend/pkg/xcontext"
)

type AuthVerifier struct {
	optional bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithOptional lets an anonymous request through without a user id instead of
// rejecting it.
func (v *AuthVerifier) WithOptional() *AuthVerifier {
	v.optional = true
	return v
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractAccessToken(ctx)
		if token == "" {
			if v.optional {
				return ctx, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func extractAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	if authorization := req.Header.Get("Authorization"); authorization != "" {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name
	if cookie, err := req.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}
