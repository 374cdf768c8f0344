package models

import (
	"sort"
	"strings"
)

// CanonicalID normalizes a raw user identifier before any lookup or
// comparison. Some clients deliver UUIDs wrapped in curly braces, so
// "{u1}" and "u1" must resolve to the same user.
func CanonicalID(raw string) string {
	return strings.Trim(raw, "{}")
}

// ChatID derives the persistence key for the conversation between two
// users. The canonical ids are ordered lexicographically before joining,
// so ChatID(a, b) == ChatID(b, a) for any pair.
func ChatID(user1ID, user2ID string) string {
	ids := []string{CanonicalID(user1ID), CanonicalID(user2ID)}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}
