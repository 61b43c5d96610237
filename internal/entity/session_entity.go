package entity

// Exchange is one user turn plus its assistant turn within a session.
type Exchange struct {
	UserText      string `json:"user_text"`
	AssistantText string `json:"assistant_text"`
}
