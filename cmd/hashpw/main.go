// Command hashpw prints the bcrypt hash to store as a user's password_hash.
package main

import (
	"flag"
	"fmt"
	"log"
	"media-catalog/internal/service"
)

func main() {
	pw := flag.String("password", "", "password to hash")
	flag.Parse()
	if *pw == "" {
		log.Fatal("-password is required")
	}
	h, err := service.HashPassword(*pw)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(h)
}
