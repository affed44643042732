package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnections struct {
	ids     []string
	err     error
	removed []string
}

func (f *fakeConnections) GetAllConnections(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func (f *fakeConnections) AddConnection(ctx context.Context, connectionID string) error {
	f.ids = append(f.ids, connectionID)
	return nil
}

func (f *fakeConnections) RemoveConnection(ctx context.Context, connectionID string) error {
	f.removed = append(f.removed, connectionID)
	return nil
}

type fakeAPIGateway struct {
	posted map[string][]byte
	errs   map[string]error
}

func (f *fakeAPIGateway) PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	id := aws.ToString(params.ConnectionId)
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	f.posted[id] = params.Data
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func testEvent() models.Event {
	id := uint64(2)
	return models.Event{
		ID:         "evt-1",
		Seq:        9,
		Type:       models.EventInvestmentMade,
		BusinessID: &id,
		Account:    "0x00000000000000000000000000000000000000c1",
		Data:       map[string]string{"tokens": "100"},
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDefaultPublisher(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		conns := &fakeConnections{ids: []string{"a", "b"}}
		client := &fakeAPIGateway{posted: map[string][]byte{}}
		p := NewPublisher(conns, conns, client, nil)

		err := p.Publish(context.Background(), NewLedgerEventMessage(testEvent()))

		require.NoError(t, err)
		assert.Len(t, client.posted, 2)
		var msg struct {
			Type    string             `json:"type"`
			Payload LedgerEventPayload `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(client.posted["a"], &msg))
		assert.Equal(t, "ledgerEvent", msg.Type)
		assert.Equal(t, uint64(9), msg.Payload.Seq)
		assert.Equal(t, "InvestmentMade", msg.Payload.Type)
		assert.Equal(t, "2026-03-01T12:00:00.000Z", msg.Payload.Timestamp)
	})

	t.Run("Gone Connection Is Removed", func(t *testing.T) {
		conns := &fakeConnections{ids: []string{"a", "gone"}}
		client := &fakeAPIGateway{
			posted: map[string][]byte{},
			errs:   map[string]error{"gone": &apigwtypes.GoneException{Message: aws.String("gone")}},
		}
		p := NewPublisher(conns, conns, client, nil)

		err := p.Publish(context.Background(), NewLedgerEventMessage(testEvent()))

		require.NoError(t, err)
		assert.Equal(t, []string{"gone"}, conns.removed)
		assert.Contains(t, client.posted, "a")
	})

	t.Run("Other Failures Are Not Removed", func(t *testing.T) {
		conns := &fakeConnections{ids: []string{"a"}}
		client := &fakeAPIGateway{posted: map[string][]byte{}, errs: map[string]error{"a": errors.New("throttled")}}
		p := NewPublisher(conns, conns, client, nil)

		require.NoError(t, p.Publish(context.Background(), NewLedgerEventMessage(testEvent())))
		assert.Empty(t, conns.removed)
	})

	t.Run("Storage Error", func(t *testing.T) {
		conns := &fakeConnections{err: errors.New("dynamodb error")}
		p := NewPublisher(conns, conns, &fakeAPIGateway{posted: map[string][]byte{}}, nil)

		err := p.Publish(context.Background(), NewLedgerEventMessage(testEvent()))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get all connections")
	})
}

type recordingPublisher struct {
	messages []Message
}

func (r *recordingPublisher) Publish(ctx context.Context, message Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func TestEventForwarder(t *testing.T) {
	rec := &recordingPublisher{}
	f := EventForwarder{Publisher: rec}

	require.NoError(t, f.Publish(context.Background(), testEvent()))

	require.Len(t, rec.messages, 1)
	assert.Equal(t, MessageTypeLedgerEvent, rec.messages[0].Type)
	payload := rec.messages[0].Payload.(LedgerEventPayload)
	assert.Equal(t, "100", payload.Data["tokens"])
	assert.Equal(t, uint64(2), *payload.BusinessID)
}
