// Package main Fairplay API
//
// Fairplay is a provably-fair casino engine. Every bet outcome is derived
// from HMAC-SHA256(serverSeed, clientSeed:nonce); the server seed is
// committed by its hash before use and revealed when it is rotated, so
// players can recompute any settled bet.
package main

import (
	"context"

	_ "github.com/saradorri/fairplay/docs"
	"github.com/saradorri/fairplay/internal/app"
)

// @title Fairplay API
// @version 1.0
// @description Provably-fair casino engine: commit-reveal server seeds, HMAC-SHA256 outcomes and a double-entry ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
