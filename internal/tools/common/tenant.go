package common

// DefaultTenant is used when a request names no tenant.
const DefaultTenant = "default"

// GetTenantFromArgs extracts the tenant identifier from request
// arguments. The argument is called "customerId" on the wire, matching
// the conversational tool contract.
func GetTenantFromArgs(args map[string]interface{}) string {
	if tenant, ok := args["customerId"].(string); ok && tenant != "" {
		return tenant
	}
	return DefaultTenant
}
