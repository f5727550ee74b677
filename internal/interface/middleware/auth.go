package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrisatya/marketplace-api/pkg/identity"
	"github.com/andrisatya/marketplace-api/pkg/response"
)

// CtxSubjectKey is the gin context key holding the authenticated subject
// identifier injected by Auth.
const CtxSubjectKey = "subjectID"

// Auth resolves the authenticated subject through the identity verifier and
// injects it into the gin context. Requests without a valid subject are
// rejected with 401.
func Auth(v identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := v.ResolveSubject(c.Request)
		if err != nil || subject == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		c.Set(CtxSubjectKey, subject)
		c.Next()
	}
}
