// cmd/lunicar-hash/main.go
//
// lunicar-hash prints a bcrypt hash of the admin password, to be set as
// LUNICAR_ADMIN_PASSWORD_HASH instead of the plain password.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lunicar/lunicar/internal/app/system/authutil"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lunicar-hash <mot-de-passe>")
		os.Exit(2)
	}
	password := os.Args[1]
	if err := authutil.ValidatePassword(password); err != nil {
		log.Printf("attention: %v", err)
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}
	fmt.Println("LUNICAR_ADMIN_PASSWORD_HASH=" + hash)
}
