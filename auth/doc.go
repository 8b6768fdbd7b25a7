// Package auth composes authentication providers and orchestrates the
// request authentication flow.
//
// Providers implement the Provider contract: a cheap CanHandle predicate over
// the request plus an Authenticate method that returns the principal, absent
// (nil, nil) on any expected credential failure, or an error only for
// unexpected conditions. The Registry holds named provider factories with
// priorities; Instantiate builds the enabled providers in ascending-priority
// order. The Service tries providers first-success in that order and enforces
// role-based authorization on top.
//
// Registration happens explicitly at the composition root:
//
//	reg := auth.NewRegistry()
//	auth.RegisterDefaults(reg)
//	providers, err := reg.Instantiate(cfg, deps)
//	svc := auth.NewService(providers, log)
package auth
