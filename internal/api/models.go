package api

// User is the authenticated profile returned by the backend.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Session is returned by the login endpoint.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Department is one row of the departments list.
type Department struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	School string `json:"school"`
}

// Teacher is used to populate teacher selects.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Record is a created resource echoed back by the backend.
type Record map[string]any
