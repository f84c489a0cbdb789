package types

// Patient represents an entry in the patient directory
type Patient struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	BloodGroup  string `json:"bloodGroup,omitempty"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Doctor represents an entry in the doctor directory
type Doctor struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Specialization  string  `json:"specialization"`
	Qualification   string  `json:"qualification,omitempty"`
	Experience      int     `json:"experience,omitempty"`
	ConsultationFee float64 `json:"consultationFee,omitempty"`
	IsActive        bool    `json:"isActive"`
}

// DirectoryQuery represents pagination and filtering for directory fetches
type DirectoryQuery struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}
