// Package credentials loads Kraken API key material from a local key file.
package credentials

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrIncomplete indicates a key file without both a key and a secret line.
var ErrIncomplete = errors.New("key file must contain the API key and secret on separate lines")

// Credentials is the API key and the decoded private key.
type Credentials struct {
	Key    string
	Secret []byte
}

// Load reads a key file: API key on the first non-empty line, base64 secret on the next.
func Load(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("reading key file: %w", err)
	}
	return Parse(data)
}

// Parse decodes key file contents.
func Parse(data []byte) (Credentials, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("scanning key file: %w", err)
	}
	if len(lines) < 2 {
		return Credentials{}, ErrIncomplete
	}

	secret, err := base64.StdEncoding.DecodeString(lines[1])
	if err != nil {
		return Credentials{}, fmt.Errorf("decoding API secret: %w", err)
	}
	return Credentials{Key: lines[0], Secret: secret}, nil
}
