package models

import "github.com/golang-jwt/jwt/v5"

// TeacherClaims is the payload of an access token issued by the auth
// collaborator. Only validation happens in this service.
type TeacherClaims struct {
	TeacherID  string `json:"_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}
