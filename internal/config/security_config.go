// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps "METHOD path-template" to the required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"GET /health":  SecurityPublic,
	"GET /metrics": SecurityPublic,

	"POST /api/v1/auth/logout": SecurityAccess,

	"GET /api/v1/orders/{order_id}":                        SecurityAccess,
	"PATCH /api/v1/rent/{user_id}/{vehicle_id}/{order_id}": SecurityAccess,
	"PATCH /api/v1/rent/cod/{order_id}":                    SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
