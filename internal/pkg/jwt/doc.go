// Package jwt issues and verifies HS512 access tokens carrying the user id
// and kind.
package jwt
