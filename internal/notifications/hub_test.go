package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(7))

	client, err := hub.Register(7, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(7))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(7))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(3, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(3, nil)
	assert.Error(t, err)

	// Another user is unaffected.
	_, err = hub.Register(4, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastDeliversToUserClients(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(5, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(5, nil)
	require.NoError(t, err)
	other, err := hub.Register(6, nil)
	require.NoError(t, err)

	hub.Broadcast(5, "hello")

	assert.Equal(t, "hello", string(<-clientA.Send))
	assert.Equal(t, "hello", string(<-clientB.Send))
	assert.Empty(t, other.Send)
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(1, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(2, nil)
	require.NoError(t, err)

	message := Encode(EventEngagementUpdated, EngagementPayload{
		Kind: "like", TargetID: 12, Active: true, Count: 4,
	})
	hub.BroadcastAll(message)

	for _, c := range []*Client{clientA, clientB} {
		var event Event
		require.NoError(t, json.Unmarshal(<-c.Send, &event))
		assert.Equal(t, EventEngagementUpdated, event.Type)
	}
}

func TestHub_StartWiringRoutesRedisMessages(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(9, nil)
	require.NoError(t, err)
	bystander, err := hub.Register(10, nil)
	require.NoError(t, err)

	// Subscription setup races with the first publish.
	require.Eventually(t, func() bool {
		require.NoError(t, notifier.PublishUser(ctx, 9, "targeted"))
		return len(client.Send) > 0
	}, testEventuallyTimeout, testPollInterval)
	assert.Equal(t, "targeted", string(<-client.Send))
	assert.Empty(t, bystander.Send)

	require.NoError(t, notifier.PublishBroadcast(ctx, "everyone"))
	assert.Eventually(t, func() bool {
		return len(bystander.Send) > 0
	}, testEventuallyTimeout, testPollInterval)
	assert.Equal(t, "everyone", string(<-bystander.Send))
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(8, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("fill"))
	}
	require.Len(t, client.Send, cap(client.Send))

	// Does not block, message is dropped.
	done := make(chan struct{})
	go func() {
		client.TrySend([]byte("overflow"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full buffer")
	}
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), nil))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "events:user:1", UserChannel(1))
	assert.Equal(t, "events:user:100", UserChannel(100))
}

func TestParseUserChannel(t *testing.T) {
	t.Parallel()

	userID, err := ParseUserChannel("events:user:42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = ParseUserChannel("events:broadcast")
	assert.Error(t, err)
}
