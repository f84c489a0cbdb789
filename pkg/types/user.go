package types

// RoleTag represents the different user roles in the system
type RoleTag string

const (
	RoleAdmin        RoleTag = "Admin"
	RoleDoctor       RoleTag = "Doctor"
	RoleNurse        RoleTag = "Nurse"
	RoleReceptionist RoleTag = "Receptionist"
	RolePatient      RoleTag = "Patient"
)

// User represents the authenticated identity returned by the auth endpoints
type User struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  RoleTag `json:"role"`
	Phone string  `json:"phone,omitempty"`
}

// Credentials represents login credentials
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationRequest represents user registration data
type RegistrationRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     RoleTag `json:"role"`
	Phone    string  `json:"phone,omitempty"`
}

// ProfileUpdate represents updates to the authenticated user's profile
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AuthPayload is the data portion of a successful login or register response
type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
