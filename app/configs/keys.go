package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintKeys prints a fresh JWT signing secret and writes it to
// .env.new_keys so it can be copied into .env.
func GenerateAndPrintKeys() error {
	fmt.Println("Generating new keys...")

	secret := securecookie.GenerateRandomKey(64)
	if secret == nil {
		return fmt.Errorf("error: could not generate JWT secret")
	}
	encoded := base64.URLEncoding.EncodeToString(secret)

	fmt.Println("\n================================================")
	fmt.Printf("JWT_SECRET=%s\n", encoded)
	fmt.Println("================================================")

	envFilePath := ".env.new_keys"
	if err := os.WriteFile(envFilePath, []byte(fmt.Sprintf("JWT_SECRET=%s\n", encoded)), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Printf("\n✅ Keys have been written to '%s'.\n", envFilePath)
	fmt.Println("REMINDER: rotating JWT_SECRET invalidates every issued token.")
	return nil
}
