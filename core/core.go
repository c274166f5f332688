package core

import "fmt"

// Namespace returns the storage namespace of a community.
func Namespace(guildID uint64) string {
	return fmt.Sprintf("guild_%d", guildID)
}
