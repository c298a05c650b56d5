package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	StaffID    uuid.UUID
	BusinessID uuid.UUID
	Role       enums.StaffRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to back-office clients.
type AccessTokenClaims struct {
	StaffID    uuid.UUID       `json:"staff_id"`
	BusinessID uuid.UUID       `json:"business_id"`
	Role       enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
