package main

import (
	"os"

	"github.com/SscSPs/simplefi_backend/cmd/simplefi/cmd"
)

//go:generate swag init -d ../../ -g cmd/simplefi/main.go -o internal/docs

// @title SimpleFi Ledger API
// @version 1.0
// @description Double-entry bookkeeping API: chart of accounts, journal posting and reversal, balances and reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
