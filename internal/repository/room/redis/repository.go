package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc             *redis.Client
	setQueueScript string
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc: rc,
		// Bumps the queue document version atomically with the write so
		// concurrent whole-document replacements are detectable.
		setQueueScript: rc.ScriptLoad(context.Background(), `
			local version = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
			version = version + 1
			redis.call('HSET', KEYS[1], 'items', ARGV[1], 'current_index', ARGV[2], 'version', version)
			return version
		`).Val(),
		expireDuration: expireDuration,
	}
}

func (r repo) getRoomKey(roomId string) string {
	return "room:" + roomId
}

func (r repo) getQueueKey(roomId string) string {
	return "room:" + roomId + ":queue"
}

func (r repo) getPlayerKey(roomId string) string {
	return "room:" + roomId + ":player"
}

func (r repo) getMessagesKey(roomId string) string {
	return "room:" + roomId + ":messages"
}

func (r repo) getReactionsKey(roomId string) string {
	return "room:" + roomId + ":reactions"
}

func (r repo) getSignalsKey(roomId, clientId string) string {
	return "room:" + roomId + ":signals:" + clientId
}

func (r repo) getEventsKey(roomId string) string {
	return "room:" + roomId + ":events"
}
