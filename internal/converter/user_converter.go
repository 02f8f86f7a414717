package converter

import (
	"hd-clinic-api/internal/delivery/dto"
	"hd-clinic-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Role name is included when the Role relation is preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
