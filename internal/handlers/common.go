package handlers

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error" example:"something went wrong"`
}

func errResp(message string) ErrorResponse {
	return ErrorResponse{OK: false, Error: message}
}
