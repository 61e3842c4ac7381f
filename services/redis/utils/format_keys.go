package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format string every time, potentially confusing the key format.
 */

import (
	"fmt"
	"strings"
)

func FormatResetTokenKey(tokenHash string) string {
	return fmt.Sprintf("reset:%s", tokenHash)
}

func FormatLoginFailuresKey(email string) string {
	return fmt.Sprintf("login_failures:%s", strings.ToLower(strings.TrimSpace(email)))
}
