package domain

// LoginRequest represents login credentials received from the frontend.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// RegisterRequest represents customer registration data. Optional fields are
// pointers so that an absent field can be told apart from an empty string;
// absent fields are omitted from the outbound SOAP envelope.
type RegisterRequest struct {
	Login     string  `json:"login" validate:"required,max=100"`
	Password  string  `json:"password" validate:"required,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,max=255"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
}

// LoginResult is the outcome of a login call against the authentication
// service. EntityDetails carries upstream-supplied profile data whose shape is
// not fixed: a string, a map[string]any, or nil when the upstream sent nothing.
type LoginResult struct {
	Success       bool
	Message       string
	EntityDetails any
}

// RegisterResult is the outcome of a registration call. CreatedCustomerID is
// set only when the upstream reports one.
type RegisterResult struct {
	Success           bool
	Message           string
	CreatedCustomerID string
}
