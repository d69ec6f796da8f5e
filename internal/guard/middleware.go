package guard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unimate/internal/observability"
	"unimate/internal/session"
)

// Middleware guards a route group. Browsers get a 302 to the target page,
// JSON clients get 401/403 with the target in the body so they can navigate
// client-side.
func Middleware(reqs Requirements, paths Paths) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.FromContext(c)
		outcome := Decide(Input{User: s.User, Profile: s.Profile, Loading: s.Loading}, reqs)
		observability.IncGuardDecision(outcome.String())

		switch outcome {
		case Render:
			c.Next()
		case Loading:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusAccepted, gin.H{"state": outcome.String()})
		default:
			target, _ := paths.Target(outcome)
			if wantsJSON(c.Request) {
				status := http.StatusForbidden
				if outcome == RedirectLogin {
					status = http.StatusUnauthorized
				}
				c.AbortWithStatusJSON(status, gin.H{"error": outcome.String(), "redirect": target})
				return
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
		}
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
