package cache

import (
	"fmt"
	"strings"
)

// Key joins non-empty parts with ':'.
func Key(parts ...interface{}) string {
	var b strings.Builder
	for _, p := range parts {
		s := fmt.Sprint(p)
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(':')
		}
		b.WriteString(s)
	}
	return b.String()
}
