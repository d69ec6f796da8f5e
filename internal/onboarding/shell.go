// Package onboarding builds the consistent frame every onboarding screen is
// served in.
package onboarding

// Shell describes the frame around one onboarding screen. An empty BackPath
// hides the back button.
type Shell struct {
	Title    string
	BackPath string
}

// ShellView is the serialized frame.
type ShellView struct {
	Title      string `json:"title"`
	BackButton bool   `json:"back_button"`
	BackPath   string `json:"back_path,omitempty"`
}

// Page is a screen payload wrapped in its shell.
type Page struct {
	Shell   ShellView `json:"shell"`
	Content any       `json:"content"`
}

// View renders the frame.
func (s Shell) View() ShellView {
	return ShellView{Title: s.Title, BackButton: s.BackPath != "", BackPath: s.BackPath}
}

// Wrap places content inside the shell.
func (s Shell) Wrap(content any) Page {
	return Page{Shell: s.View(), Content: content}
}

// Step is one screen of the onboarding flow.
type Step struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Steps is the onboarding flow in order.
var Steps = []Step{
	{Key: "welcome", Title: "Welcome to uniMate", Path: "/welcome"},
	{Key: "profile", Title: "Complete your profile", Path: "/onboarding/profile"},
}

// ShellFor returns the shell of the step with key. The first step has no
// back button; later steps point to the previous one.
func ShellFor(key string) (Shell, bool) {
	for i, step := range Steps {
		if step.Key != key {
			continue
		}
		shell := Shell{Title: step.Title}
		if i > 0 {
			shell.BackPath = Steps[i-1].Path
		}
		return shell, true
	}
	return Shell{}, false
}
