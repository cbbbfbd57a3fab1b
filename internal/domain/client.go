package domain

type Client struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
