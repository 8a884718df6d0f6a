package dto

type LoginRequest struct {
	AgentID  string `json:"agentId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AgentLoginResponse struct {
	AgentResponse
	Token string `json:"token"`
}

type AdminLoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Token string `json:"token"`
}
