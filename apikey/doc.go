// Package apikey implements the API-key credential lifecycle.
//
// A key's plaintext secret ("sk_" + 64 lowercase hex characters) is returned
// exactly once at creation and never stored or logged; the record keeps a
// salted one-way hash plus the first 12 plaintext characters as an indexed
// lookup prefix. Validation gates on format before any I/O, checks expiry
// before the hash comparison, and updates the last-used timestamp on a
// best-effort basis. Creation is quota-gated per owner.
package apikey
