// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package ctxkeys defines typed context keys shared across packages.
package ctxkeys

// User is the context key for the authenticated user.
type User struct{}
