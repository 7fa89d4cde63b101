package middleware

import (
	"context"

	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/pkg/router"
	"github.com/clanbase/backend/pkg/xcontext"
)

// HandleSaveSession persists the freshly issued access token into the cookie
// session after a successful registration.
func HandleSaveSession() router.CloserFunc {
	return func(ctx context.Context) {
		if xcontext.Error(ctx) != nil {
			return
		}

		resp, ok := xcontext.Response(ctx).(*model.RegisterResponse)
		if !ok || resp == nil {
			return
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get session: %v", err)
			return
		}

		session.Values[xcontext.Configs(ctx).Auth.AccessToken.Name] = resp.AccessToken
		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot save session: %v", err)
		}
	}
}
