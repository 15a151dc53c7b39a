package dto

type CreateBlogPostInput struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type UpdateBlogPostInput struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type CreateCommentInput struct {
	Content string `json:"content" binding:"required,max=5000"`
}
