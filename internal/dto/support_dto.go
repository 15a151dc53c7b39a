package dto

type CreateTicketInput struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=10000"`
}

type ReplyTicketInput struct {
	Body string `json:"body" binding:"required,max=10000"`
}
