package domain

import "strings"

// PatientRole is the role name picked for self-registration.
const PatientRole = "PATIENT"

type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Lang        *string `json:"lang,omitempty"`
}

// Session is the durable authentication state of the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// AuthResult is the payload of login, register and refresh responses.
// Register may omit tokens when the account needs activation.
type AuthResult struct {
	Token                string `json:"token"`
	TokenValidity        int64  `json:"tokenValidity"`
	RefreshToken         string `json:"refreshToken"`
	RefreshTokenValidity int64  `json:"refreshTokenValidity"`
	User                 User   `json:"user"`
}

func (r AuthResult) HasTokens() bool {
	return r.Token != "" && r.RefreshToken != ""
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Lang        *string `json:"lang,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.PhoneNumber == nil && p.Lang == nil && p.Password == nil
}

// Apply merges the non-secret fields of p into u.
func (u User) Apply(p UserPatch) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		v := *p.PhoneNumber
		u.PhoneNumber = &v
	}
	if p.Lang != nil {
		v := *p.Lang
		u.Lang = &v
	}
	return u
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "Utilisateur"
	}
	return name
}
