package domain

type Provider struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}
