package services

import "github.com/dropDatabas3/hellopost/internal/store/key"

func accountCacheKey(id string) string {
	return "account:" + id
}

// ownerFeedCacheKey normalizes the owner id so that the hex form and the
// decoded native key map to the same entry.
func ownerFeedCacheKey(ownerID string) string {
	return "posts:owner:" + key.Parse(ownerID).String()
}
