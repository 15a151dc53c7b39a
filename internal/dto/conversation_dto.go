package dto

type StartConversationInput struct {
	RecipientUsername string `json:"recipient_username" binding:"required"`
	Body              string `json:"body" binding:"required,max=5000"`
}

type SendMessageInput struct {
	Body string `json:"body" binding:"required,max=5000"`
}
