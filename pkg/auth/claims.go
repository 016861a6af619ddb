package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   string
	Fullname string
	ImgURL   string
	IsAdmin  bool
	JTI      string
}

// AccessTokenClaims is the typed JWT issued to clients. The resolved caller
// identity rides inside the token so services never look users up.
type AccessTokenClaims struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname,omitempty"`
	ImgURL   string `json:"img_url,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}
