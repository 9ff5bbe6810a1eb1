package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "bluecup_session"

// Deployment modes understood by the server configuration.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)
