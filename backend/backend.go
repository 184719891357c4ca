// Package backend implements the osci service interfaces against the
// external HTTP backend.
//
// Every call is a single JSON POST. Session existence checks are fail-safe:
// transport and status failures both read as "no session" and are only logged.
package backend

const (
	DefaultBaseURL = "http://localhost:5000"

	checkSessionPath  = "/check-session"
	createSessionPath = "/create-session"
	validateURLPath   = "/validate-github-url"
	gatherFilesPath   = "/gather-files"
	chatPath          = "/chat"
)

type checkSessionRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type createSessionRequest struct {
	Repository string `json:"repository"`
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
}

// sessionResponse fields are all optional; missing ones fall back to the
// locally derived values.
type sessionResponse struct {
	SessionID  string `json:"session_id"`
	UserID     string `json:"user_id"`
	Repository string `json:"repository"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type apiFile struct {
	Path    string `json:"path,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	Size    int64  `json:"size,omitempty"`
}

type gatherResponse struct {
	Repository string    `json:"repository"`
	Files      []apiFile `json:"files"`
	TotalFiles int       `json:"total_files"`
}

type chatFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message    string     `json:"message"`
	Repository string     `json:"repository"`
	Files      []chatFile `json:"files"`
	SessionID  string     `json:"session_id"`
	UserID     string     `json:"user_id"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}
