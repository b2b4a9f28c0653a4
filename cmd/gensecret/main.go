// Generates a random hex secret suitable for JWT_ACCESS_SECRET and
// JWT_REFRESH_SECRET. Run it twice: the two secrets must differ
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const defaultSecretBytesLen = 32

func main() {
	length := pflag.IntP("length", "n", defaultSecretBytesLen, "Secret length in bytes")
	pflag.Parse()

	b := make([]byte, *length)

	_, err := rand.Read(b)
	if err != nil {
		fmt.Printf("error while generating secret key: %v", err)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(b))
}
