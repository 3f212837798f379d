package recovery

// ResetRequest carries the whole reset flow in one request: there is no
// intermediate "identity verified" token between answer verification and the
// password write.
type ResetRequest struct {
	Email            string `json:"email"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
	NewPassword      string `json:"newPassword"`
}

// UpdateQuestionRequest sets or replaces an account's recovery question.
type UpdateQuestionRequest struct {
	UserID           int64  `json:"userId"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}
