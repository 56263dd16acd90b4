package qna

type CreateQuestionRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required,max=2000"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type AuthorResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type QuestionResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	CreatedAt    string          `json:"created_at"`
	Author       *AuthorResponse `json:"author,omitempty"`
	CommentCount int             `json:"comment_count"`
}

type CommentResponse struct {
	ID         string          `json:"id"`
	QuestionID string          `json:"question_id"`
	Content    string          `json:"content"`
	CreatedAt  string          `json:"created_at"`
	Author     *AuthorResponse `json:"author,omitempty"`
}
