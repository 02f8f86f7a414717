package middleware

import (
	"net/http"

	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the
// required roles. Role is read from context (set by AuthMiddleware).
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin gates admin-only endpoints (staff registration)
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireClinical gates patient and session management: doctors and nurses
func RequireClinical(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDNurse)(next)
}

// RequireMonitoring gates intra-dialysis data entry: clinical staff plus
// dialysis technicians
func RequireMonitoring(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDNurse, entity.RoleIDTechnician)(next)
}

// RequireAuditRead gates the audit trail: admins and heads of department
func RequireAuditRead(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDHOD)(next)
}
