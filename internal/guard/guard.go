// Package guard decides whether a page may be rendered for the current
// auth state or where the visitor must be sent instead.
package guard

import (
	"unimate/internal/models"
)

// Outcome is the result of a guard decision.
type Outcome int

const (
	Loading Outcome = iota
	RedirectLogin
	RedirectHome
	RedirectWelcome
	Render
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectWelcome:
		return "redirect_welcome"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// IsRedirect reports whether the outcome navigates away.
func (o Outcome) IsRedirect() bool {
	return o == RedirectLogin || o == RedirectHome || o == RedirectWelcome
}

// Requirements are the declarative constraints of a guarded route.
type Requirements struct {
	RequireAdmin       bool
	RequireProfile     bool
	RedirectIfComplete bool
}

// Input is the auth state the decision is made on.
type Input struct {
	User    *models.User
	Profile *models.Profile
	Loading bool
}

// Decide applies the rules in order; the first match wins.
func Decide(in Input, reqs Requirements) Outcome {
	if in.Loading {
		return Loading
	}
	if in.User == nil {
		return RedirectLogin
	}
	if reqs.RequireAdmin && !in.Profile.IsAdmin() {
		return RedirectHome
	}
	complete := in.Profile.IsComplete()
	if reqs.RequireProfile && !complete {
		return RedirectWelcome
	}
	if reqs.RedirectIfComplete && complete {
		return RedirectHome
	}
	return Render
}

// Paths are the client-side routes redirects point to.
type Paths struct {
	Login   string
	Home    string
	Welcome string
}

// DefaultPaths are the routes of the web app.
var DefaultPaths = Paths{Login: "/login", Home: "/home", Welcome: "/welcome"}

// Target returns the redirect path for a redirect outcome.
func (p Paths) Target(o Outcome) (string, bool) {
	switch o {
	case RedirectLogin:
		return p.Login, true
	case RedirectHome:
		return p.Home, true
	case RedirectWelcome:
		return p.Welcome, true
	}
	return "", false
}
