package model

// Scope identifies the authenticated caller of a request.
// Authentication itself happens upstream; handlers only ever see a Scope.
type Scope struct {
	UserID string
	Email  string
}

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
