package auth

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryMargin is how close to its expiry a token is considered expiring.
const ExpiryMargin = 60 * time.Second

// now is swapped in tests.
var now = time.Now

// Scope is an ordered set of access rights.
type Scope []string

// ParseScope splits a space-separated scope string, dropping duplicates.
func ParseScope(s string) Scope {
	var scope Scope
	for _, f := range strings.Fields(s) {
		if !slices.Contains(scope, f) {
			scope = append(scope, f)
		}
	}
	return scope
}

// String joins the scope with spaces, the form the accounts service expects.
func (s Scope) String() string {
	return strings.Join(s, " ")
}

// Contains reports whether right is part of the scope.
func (s Scope) Contains(right string) bool {
	return slices.Contains(s, right)
}

// Token is an access token as returned by the accounts service.
//
// Tokens are never modified after creation; a refresh produces a new Token.
type Token struct {
	AccessToken  string
	TokenType    string
	Scope        Scope
	RefreshToken string    // empty for client credentials tokens
	ExpiresAt    time.Time // zero when the lifetime is unknown
}

// ExpiresIn returns the remaining lifetime of the token, false when unknown.
func (t *Token) ExpiresIn() (time.Duration, bool) {
	if t.ExpiresAt.IsZero() {
		return 0, false
	}
	return t.ExpiresAt.Sub(now()), true
}

// IsExpiring reports whether the token should be refreshed before use.
//
// A token without a known expiry is always expiring.
func (t *Token) IsExpiring() bool {
	remaining, ok := t.ExpiresIn()
	if !ok {
		return true
	}
	return remaining < ExpiryMargin
}

// OAuth2 converts the token to an [oauth2.Token].
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
	}
}

// fromOAuth2 builds a Token from a token endpoint response.
//
// The scope is read from the raw response since [oauth2.Token] has no field for it.
func fromOAuth2(tok *oauth2.Token) *Token {
	t := &Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if s, ok := tok.Extra("scope").(string); ok {
		t.Scope = ParseScope(s)
	}
	return t
}
