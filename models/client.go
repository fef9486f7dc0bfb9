package models

// Client is a billable customer. Id is assigned at creation and never changes;
// CreatedAt/UpdatedAt are RFC3339 strings so list views can sort them lexically.
type Client struct {
	Id        string `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"not null"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at" gorm:"type:varchar(32)"`
	UpdatedAt string `json:"updated_at,omitempty" gorm:"type:varchar(32)"`
}
