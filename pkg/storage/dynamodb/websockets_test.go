package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/polyfunds-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConnections(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			id := in.Item["connection_id"].(*types.AttributeValueMemberS)
			_, hasTTL := in.Item["ttl"]
			return *in.TableName == "connections" && id.Value == "abc=" && hasTTL
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		assert.NoError(t, store.AddConnection(context.Background(), "abc="))
		mockClient.AssertExpectations(t)
	})

	t.Run("Remove Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamodb error")).Once()

		err := store.RemoveConnection(context.Background(), "abc=")
		assert.Error(t, err)
	})

	t.Run("Get All", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		items := []map[string]types.AttributeValue{
			{"connection_id": &types.AttributeValueMemberS{Value: "a"}},
			{"connection_id": &types.AttributeValueMemberS{Value: "b"}},
		}
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: items}, nil).Once()

		ids, err := store.GetAllConnections(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})
}
