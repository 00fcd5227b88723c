package response_models

type ChatMessageResponse struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

type ChatSessionResponse struct {
	SessionID    string `json:"sessionId"`
	CreatedAt    string `json:"createdAt"`
	MessageCount int    `json:"messageCount"`
}

type ChatSessionsResponse struct {
	Sessions []ChatSessionResponse `json:"sessions"`
}
