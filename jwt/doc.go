// Package jwt implements the signed-token credential lifecycle.
//
// A Codec signs and verifies claims with a shared HMAC secret (HS256, HS384
// or HS512 only). The Service layers the lifecycle on top: login issues an
// access+refresh pair, verification enforces token type and revocation state,
// refresh rotation blacklists the old refresh token atomically before issuing
// a new pair, and logout blacklists the presented access token for its
// remaining life. Revocation state is authoritative: a cryptographically
// valid token that has been rotated away or logged out is rejected.
package jwt
