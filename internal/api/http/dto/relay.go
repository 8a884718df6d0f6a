package dto

type RelaySuccessResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Data    string `json:"data"`
}

type RelayErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode,omitempty"`
}
