package models

type ErrorResponse struct {
	Error  string      `json:"error"`
	Errors interface{} `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
