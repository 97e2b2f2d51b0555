package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Lang        string
	Password    string
	// RoleID 0 selects the patient role from the server's role list.
	RoleID int64
}

type UserOutput struct {
	ID          int64
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Lang        string
	DisplayName string
}

type SessionOutput struct {
	Authenticated bool
	User          UserOutput
}

type RoleOutput struct {
	ID   int64
	Name string
}

type UpdateUserInput struct {
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Lang        *string
	Password    *string
}
