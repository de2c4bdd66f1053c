// Package storage holds the object stores screenshots are uploaded to.
//
// Objects are addressed by a container and a key. Keys are relative,
// slash-separated paths such as "12/0b6f...c1.png".
package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned by Download when the object does not exist.
var ErrNotFound = errors.New("object not found")

// checkAddress rejects containers and keys that could escape their namespace.
func checkAddress(container, key string) error {
	if container == "" || strings.ContainsAny(container, `/\`) || container == "." || container == ".." {
		return fmt.Errorf("invalid container %q", container)
	}
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid key %q", key)
		}
	}
	return nil
}

// publicURL joins a configured base URL with the object address.
func publicURL(base, container, key string) string {
	return strings.TrimRight(base, "/") + "/" + path.Join(container, key)
}
