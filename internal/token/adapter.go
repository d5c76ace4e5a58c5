package token

import (
	"attest/internal/platform/middleware"
)

// ToMiddlewareClaims converts token claims to the middleware contract.
func ToMiddlewareClaims(claims *Claims) *middleware.Claims {
	return &middleware.Claims{ActorID: claims.ActorID}
}

// ServiceAdapter bridges the token service to the auth middleware.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*middleware.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
