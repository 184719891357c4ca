package backend

import (
	"context"

	"github.com/KyahWill/osci"
)

// SendMessage forwards req to the agent and returns its reply text, which may
// be empty when the backend answered without one.
func (c *Client) SendMessage(ctx context.Context, req osci.ChatRequest) (string, error) {
	body := chatRequest{
		Message:    req.Message,
		Repository: req.Repository,
		Files:      make([]chatFile, len(req.Files)),
		SessionID:  req.SessionID,
		UserID:     req.UserID,
	}
	for i, f := range req.Files {
		path := f.Path
		if path == "" {
			path = f.Name
		}
		body.Files[i] = chatFile{Path: path, Content: f.Content}
	}
	var resp chatResponse
	if err := c.post(ctx, c.chatTimeout, "chat", chatPath, body, &resp); err != nil {
		c.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("chat request failed")
		return "", err
	}
	return resp.Response, nil
}
