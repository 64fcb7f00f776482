/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
)

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
const msgLimit = 1988 // keep space for newlines and markdown

// TruncateContent clips s to Discord's message length limit.
func TruncateContent(s string) string {
	runes := []rune(s)
	if len(runes) > msgLimit {
		s = fmt.Sprintf("%v...", string(runes[:msgLimit]))
	}
	return s
}

// GetEnvOrDefault returns the environment variable's value or def when
// unset/empty.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
