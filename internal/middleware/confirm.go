// internal/middleware/confirm.go
package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"site-manager/internal/confirm"
	"site-manager/internal/domain"

	"github.com/gin-gonic/gin"
)

// TokenField is the form field carrying the confirmation token.
const TokenField = "confirm_token"

// ConfirmedIDKey is where the verified target id is stored on the context.
const ConfirmedIDKey = "confirmed_id"

type ConfirmMiddleware struct {
	tokenService *confirm.TokenService
}

func NewConfirmMiddleware(ts *confirm.TokenService) *ConfirmMiddleware {
	return &ConfirmMiddleware{tokenService: ts}
}

// RequireConfirmation lets the request through only when the form carries a
// token issued for action on the :id route parameter. Otherwise the user is
// sent back to redirectTo with a notice, keeping the posted categoryId.
func (m *ConfirmMiddleware) RequireConfirmation(action, redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := domain.ParseID(c.Param("id"))
		if err != nil {
			abortWithNotice(c, redirectTo, "invalid-id")
			return
		}

		if err := m.tokenService.Verify(c.PostForm(TokenField), action, id); err != nil {
			slog.Warn("Confirmation rejected", "action", action, "id", id, "error", err)
			abortWithNotice(c, redirectTo, "confirm-expired")
			return
		}

		c.Set(ConfirmedIDKey, id)
		c.Next()
	}
}

func abortWithNotice(c *gin.Context, target, notice string) {
	q := url.Values{"notice": {notice}}
	if categoryID, err := domain.ParseID(c.PostForm("categoryId")); err == nil {
		q.Set("categoryId", categoryID.String())
	}
	c.Redirect(http.StatusSeeOther, target+"?"+q.Encode())
	c.Abort()
}
