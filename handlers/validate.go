package handlers

import (
	"fmt"
	"regexp"
	"strings"
)

var validPartition = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]{0,63}$`)

// SanitizePartitionName trims a requested domain name and validates its
// characters. A blank name is returned as "" without error; the exporter
// reports it as "no domain selected".
func SanitizePartitionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if !validPartition.MatchString(name) {
		return "", fmt.Errorf("domain name must be 1-64 characters and contain only letters, numbers, spaces, ., _, or -")
	}
	return name, nil
}
