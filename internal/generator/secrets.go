package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// secretNames are the keys and salts wp-config.php defines.
var secretNames = []string{
	"AUTH_KEY",
	"SECURE_AUTH_KEY",
	"LOGGED_IN_KEY",
	"NONCE_KEY",
	"AUTH_SALT",
	"SECURE_AUTH_SALT",
	"LOGGED_IN_SALT",
	"NONCE_SALT",
}

const (
	secretLength = 64
	// Same alphabet as the WordPress secret-key service, minus quote and backslash so values
	// can sit inside single-quoted PHP strings.
	secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_ []{}<>~`+=,.;:/?|"
)

// generateSecrets returns a fresh value for every name in secretNames.
func generateSecrets() ([]Secret, error) {
	out := make([]Secret, 0, len(secretNames))
	for _, name := range secretNames {
		v, err := randomString(secretLength, secretAlphabet)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		out = append(out, Secret{Name: name, Value: v})
	}
	return out, nil
}

func randomString(n int, alphabet string) (string, error) {
	limit := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}
