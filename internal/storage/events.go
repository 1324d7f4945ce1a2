package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/config"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/redis/go-redis/v9"
)

const roomChannelPrefix = "chat:room:"

// PublishRoomEvent broadcasts the event on the room's Redis channel so
// every running API instance can fan it out to its connected clients.
func (s *Service) PublishRoomEvent(roomID string, ev models.RoomEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, roomChannelPrefix+roomID, payload).Err()
}

// SubscribeRoomEvents pattern-subscribes to every room channel and
// returns a channel of decoded events. The subscription is closed when
// ctx is cancelled. Undecodable payloads are logged and skipped.
func (s *Service) SubscribeRoomEvents(ctx context.Context) (<-chan models.RoomEvent, error) {
	pubsub := s.Redis.PSubscribe(ctx, roomChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan models.RoomEvent)
	go func() {
		defer pubsub.Close()
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev models.RoomEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.Log.Warnw("dropping undecodable room event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// SetOnline records presence with a TTL so crashed instances age out.
func (s *Service) SetOnline(userID string) error {
	pipe := s.Redis.Pipeline()
	pipe.SAdd(s.Ctx, "online_users", userID)
	pipe.Set(s.Ctx, "presence:"+userID, "online", config.PresenceTTL)
	_, err := pipe.Exec(s.Ctx)
	return err
}

func (s *Service) SetOffline(userID string) error {
	pipe := s.Redis.Pipeline()
	pipe.SRem(s.Ctx, "online_users", userID)
	pipe.Del(s.Ctx, "presence:"+userID)
	_, err := pipe.Exec(s.Ctx)
	return err
}

// RevokeSessions invalidates every token issued to the user before now.
// The forced sign-out on a role mismatch goes through here. Tokens issued
// by a later sign-in remain valid.
func (s *Service) RevokeSessions(userID string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, "revoked:"+userID, time.Now().Unix(), ttl).Err()
}

// SessionsRevokedAt returns the user's revocation cut-off, or the zero
// time when no revocation is in effect.
func (s *Service) SessionsRevokedAt(userID string) (time.Time, error) {
	unix, err := s.Redis.Get(s.Ctx, "revoked:"+userID).Int64()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}
