package guard

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Guard struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Name      string    `json:"name"`
	Badge     string    `json:"badge"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is an identity or license document tracked for verification.
type Document struct {
	ID         string     `json:"id"`
	GuardID    string     `json:"guardId"`
	DocType    string     `json:"docType"`
	Number     string     `json:"number"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Verified   bool       `json:"verified"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}
