package request_models

type SaveMessageRequest struct {
	SessionID string `json:"sessionId"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
}
