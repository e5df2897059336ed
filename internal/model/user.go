package model

// User is the profile returned by the backend on login.  Token is the
// backend bearer token; the storefront never exposes it to the browser
// directly but wraps it in its own session token.
type User struct {
	ID          string `json:"id,omitempty"`
	Email       string `json:"email"`
	FullName    string `json:"fullname,omitempty"`
	Dob         string `json:"dob,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Position    string `json:"position,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Role names used in storefront session tokens.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// RoleFor derives the storefront role of a backend user.  Staff accounts
// carry a position; everyone else is a customer.
func RoleFor(u User) string {
	switch {
	case u.Role != "" && (u.Role == RoleAdmin || u.Role == "Admin" || u.Role == "admin"):
		return RoleAdmin
	case u.Position != "":
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

// LoginRequest is the body of POST /Authen/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /Authen/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Dob         string `json:"dob" validate:"required,datetime=2006-01-02"`
	FullName    string `json:"fullname" validate:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
}

// AuthResult is the success body of POST /Authen/login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Error string `json:"error,omitempty"`
}

// Employee is a staff member managed from the back office.
type Employee struct {
	ID          string `json:"id,omitempty"`
	CID         string `json:"cid,omitempty"`
	Name        string `json:"name"`
	Dob         string `json:"dob"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Position    string `json:"position,omitempty"`
	StartDate   string `json:"startDate"`
}

// EmployeeInput is the body accepted by POST/PUT /Employees.
type EmployeeInput struct {
	CID         string `json:"cid" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=200"`
	Dob         string `json:"dob" validate:"required,datetime=2006-01-02"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"max=500"`
	Position    string `json:"position" validate:"required,max=100"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// Customer is a registered storefront customer.
type Customer struct {
	Employee
	EmailConfirm bool    `json:"emailConfirm"`
	PhoneConfirm bool    `json:"phoneConfirm"`
	Point        int     `json:"point"`
	Orders       []Order `json:"orders,omitempty"`
}
