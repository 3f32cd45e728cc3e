package authtoken

// User is the authenticated principal a token is issued to.
type User struct {
	ID string
}

// Tenant is the deployment that issues and verifies a token.
type Tenant struct {
	ID string
}
