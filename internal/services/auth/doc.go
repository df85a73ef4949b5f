// Package auth owns the single admin identity: it checks the configured
// email and bcrypt password hash and issues short-lived HS256 session tokens
// that the admin web module stores in a cookie.
package auth
