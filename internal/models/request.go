package models

import "strings"

var validInterviewTypes = map[string]bool{
	"technical":  true,
	"behavioral": true,
	"mixed":      true,
}

var validInputMethods = map[string]bool{
	"voice": true,
	"text":  true,
	"both":  true,
}

// CreateInterviewRequest configures a new interview session.
type CreateInterviewRequest struct {
	Role                 string `json:"role"`
	CustomJobDescription string `json:"customJobDescription"`
	InterviewType        string `json:"interviewType"`
	Difficulty           int    `json:"difficulty"`
	Duration             int    `json:"duration"`
	InputMethod          string `json:"inputMethod"`
}

// implements the Validator interface
func (r *CreateInterviewRequest) Validate() error {
	role := strings.TrimSpace(r.Role)
	desc := strings.TrimSpace(r.CustomJobDescription)
	if role == "" && desc == "" {
		return &ErrorResponse{
			Code:    "missing_role",
			Message: "Either role or customJobDescription is required",
		}
	}
	if !validInterviewTypes[r.InterviewType] {
		return &ErrorResponse{
			Code:    "invalid_interview_type",
			Message: "Interview type must be technical, behavioral, or mixed",
		}
	}
	if r.Difficulty < 1 || r.Difficulty > 4 {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "Difficulty must be between 1 and 4",
		}
	}
	if r.Duration < 10 || r.Duration > 60 {
		return &ErrorResponse{
			Code:    "invalid_duration",
			Message: "Duration must be between 10 and 60 minutes",
		}
	}
	if r.InputMethod == "" {
		r.InputMethod = "both"
	}
	if !validInputMethods[r.InputMethod] {
		return &ErrorResponse{
			Code:    "invalid_input_method",
			Message: "Input method must be voice, text, or both",
		}
	}
	return nil
}

// QuestionRequest carries the conversation so far so the model can avoid
// repeating itself.
type QuestionRequest struct {
	Context string `json:"context"`
}

func (r *QuestionRequest) Validate() error {
	// Context may be empty for the first question.
	return nil
}

// AnswerRequest submits an answer to a previously issued question.
type AnswerRequest struct {
	QuestionID       string `json:"questionId"`
	Answer           string `json:"answer"`
	TimeTakenSeconds *int   `json:"timeTakenSeconds"`
}

func (r *AnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "questionId is required"}
	}
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "empty_answer", Message: "Answer must not be empty"}
	}
	return nil
}
