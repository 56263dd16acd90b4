package interview

type CaseFilter struct {
	Type     string `form:"type" binding:"omitempty,oneof=major ethics"`
	Source   string `form:"source" binding:"omitempty,oneof=exam predicted"`
	Category string `form:"category"`
}

type CreateCaseRequest struct {
	Type      string   `json:"type" binding:"required,oneof=major ethics"`
	Title     string   `json:"title" binding:"required,max=200"`
	Category  string   `json:"category" binding:"max=100"`
	Diagnosis string   `json:"diagnosis" binding:"max=200"`
	Topic     string   `json:"topic" binding:"max=200"`
	CaseText  string   `json:"case_text" binding:"required"`
	Years     []string `json:"years"`
	Source    string   `json:"source" binding:"required,oneof=exam predicted"`
}

type UpdateCaseRequest struct {
	Type      *string   `json:"type" binding:"omitempty,oneof=major ethics"`
	Title     *string   `json:"title" binding:"omitempty,max=200"`
	Category  *string   `json:"category" binding:"omitempty,max=100"`
	Diagnosis *string   `json:"diagnosis" binding:"omitempty,max=200"`
	Topic     *string   `json:"topic" binding:"omitempty,max=200"`
	CaseText  *string   `json:"case_text" binding:"omitempty"`
	Years     *[]string `json:"years"`
	Source    *string   `json:"source" binding:"omitempty,oneof=exam predicted"`
}

type QuestionRequest struct {
	Question  string   `json:"question" binding:"required"`
	KeyPoints []string `json:"key_points"`
	Tip       string   `json:"tip"`
	OrderNum  int      `json:"order_num" binding:"min=0"`
	Source    string   `json:"source" binding:"omitempty,oneof=exam predicted"`
}

type UpsertAnswerRequest struct {
	CaseID     string `json:"case_id" binding:"required,uuid"`
	QuestionID string `json:"question_id" binding:"required,uuid"`
	AnswerText string `json:"answer_text" binding:"required"`
}

type PracticeLogRequest struct {
	CaseID    string `json:"case_id" binding:"required,uuid"`
	TimeSpent int    `json:"time_spent" binding:"min=0"`
}

// SeedRequest is the bulk-loading payload: cases with their questions in a
// single admin call.
type SeedRequest struct {
	Cases []SeedCase `json:"cases" binding:"required,min=1,dive"`
}

type SeedCase struct {
	CreateCaseRequest
	Questions []QuestionRequest `json:"questions" binding:"dive"`
}

type PracticeStatsResponse struct {
	TodayCount int `json:"today_count"`
	TotalCount int `json:"total_count"`
}
