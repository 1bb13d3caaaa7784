// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// Role selects which screens a user is sent to. Nothing enforces it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleJuror   Role = "juror"
	RoleManager Role = "manager"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Placeholder accounts. The password equals the username.
var accounts = map[string]struct {
	password string
	role     Role
}{
	"admin":   {password: "admin", role: RoleAdmin},
	"juror":   {password: "juror", role: RoleJuror},
	"manager": {password: "manager", role: RoleManager},
}

// Authenticate looks the user up in the fixed placeholder table.
// It offers no security and must not guard anything real.
func Authenticate(username, password string) (Role, error) {
	acct, ok := accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(acct.password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return acct.role, nil
}
