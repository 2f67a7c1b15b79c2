package company

type UpdateCompanyRequest struct {
	Name   string `json:"company_name" binding:"omitempty,max=255"`
	Logo   string `json:"logo" binding:"omitempty,max=255"`
	Banner string `json:"banner" binding:"omitempty,max=255"`
	Bio    string `json:"bio" binding:"omitempty,max=255"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"company_name"`
	Subdomain string `json:"subdomain"`
	Logo      string `json:"logo,omitempty"`
	Banner    string `json:"banner,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Status    string `json:"status"`
}
