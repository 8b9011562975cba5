package redis

import (
	"fmt"

	"github.com/mcoot/skyjoscore/internal/model"
)

// Key prefix for all score-tracker data
const keyPrefix = "skyjo"

// sessionKey returns the Redis key for a Session
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code)
}
