package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Txn runs fn inside a multi-document transaction. Used by the two write
// paths that must atomically insert an aggregate and append its ID to the
// parent program; on any error inside fn the whole transaction aborts and
// neither write is visible.
type Txn struct {
	client *mongo.Client
}

func NewTxn(client *mongo.Client) *Txn {
	return &Txn{client: client}
}

func (t *Txn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
