package auth

type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=50"`
	Subdomain   string `json:"subdomain" binding:"required,min=3,max=50,hostname_rfc1123"`
	Email       string `json:"email" binding:"required,email,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Subdomain string `json:"subdomain,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"user_name"`
	Role      string `json:"role"`
}
