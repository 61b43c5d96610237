package dto

type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id"`
}

type QueryResponse struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionId string   `json:"session_id"`
}

type ClearSessionResponse struct {
	SessionId string `json:"session_id"`
}
