package notification

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mbendary2019/Shoporia-sub001/database"
)

// MongoDeviceTokenSource reads the device registrations maintained by the
// auth/profile subsystem.
type MongoDeviceTokenSource struct {
	coll *mongo.Collection
}

func NewMongoDeviceTokenSource() *MongoDeviceTokenSource {
	return &MongoDeviceTokenSource{coll: database.DB().Collection("device_tokens")}
}

func (s *MongoDeviceTokenSource) DeviceTokens(ctx context.Context, customerID string) ([]string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := s.coll.Find(ctxWithTimeout, bson.M{"customerId": customerID})
	if err != nil {
		return nil, fmt.Errorf("device token query failed: %w", err)
	}
	defer cur.Close(ctxWithTimeout)

	var docs []struct {
		Token string `bson:"token"`
	}
	if err := cur.All(ctxWithTimeout, &docs); err != nil {
		return nil, fmt.Errorf("error decoding device tokens: %w", err)
	}

	tokens := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Token != "" {
			tokens = append(tokens, d.Token)
		}
	}
	return tokens, nil
}
