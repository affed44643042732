package websockets

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage/memory"
	"github.com/chris/polyfunds-ledger/pkg/websockets"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingConnections struct{}

func (failingConnections) AddConnection(ctx context.Context, connectionID string) error {
	return errors.New("dynamodb error")
}

func (failingConnections) RemoveConnection(ctx context.Context, connectionID string) error {
	return errors.New("dynamodb error")
}

func request(routeKey, connectionID string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		RequestContext: events.APIGatewayWebsocketProxyRequestContext{RouteKey: routeKey, ConnectionID: connectionID},
	}
}

func TestRoute(t *testing.T) {
	t.Run("Connect And Disconnect", func(t *testing.T) {
		store := memory.New()
		h := NewHandler(store, nil, nil)

		resp, err := h.Route(context.Background(), request("$connect", "abc="))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		ids, _ := store.GetAllConnections(context.Background())
		assert.Equal(t, []string{"abc="}, ids)

		resp, err = h.Route(context.Background(), request("$disconnect", "abc="))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		ids, _ = store.GetAllConnections(context.Background())
		assert.Empty(t, ids)
	})

	t.Run("Storage Error", func(t *testing.T) {
		h := NewHandler(failingConnections{}, nil, nil)

		resp, err := h.Route(context.Background(), request("$connect", "abc="))
		assert.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})

	t.Run("Default", func(t *testing.T) {
		h := NewHandler(failingConnections{}, nil, nil)

		resp, err := h.Route(context.Background(), request("$default", "abc="))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestServeHTTPStreamsEvents(t *testing.T) {
	store := memory.New()
	hub := websockets.NewHub(nil)
	srv := httptest.NewServer(NewHandler(store, hub, nil))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	forwarder := websockets.EventForwarder{Publisher: hub}
	require.NoError(t, forwarder.Publish(context.Background(), models.Event{Seq: 1, Type: models.EventDeposited}))

	var msg websockets.Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, websockets.MessageTypeLedgerEvent, msg.Type)

	client.Close()
	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}
