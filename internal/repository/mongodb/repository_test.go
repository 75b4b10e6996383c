package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/stockledger/internal/domain/models"
)

func TestSaveStockReport(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	report := models.StockReport{
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		SKU:       "SKU-1",
		Stock:     40,
		Reserved:  10,
		Total:     50,
		CreatedAt: time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC),
	}

	mt.Run("upserts report", func(mt *mtest.T) {
		repo := &MongoDBRepository{client: mt.Client, dbName: mt.Coll.Database().Name(), collName: mt.Coll.Name()}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.SaveStockReport(context.Background(), report))
	})

	mt.Run("wraps write errors", func(mt *mtest.T) {
		repo := &MongoDBRepository{client: mt.Client, dbName: mt.Coll.Database().Name(), collName: mt.Coll.Name()}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
			Name:    "DuplicateKey",
		}))

		err := repo.SaveStockReport(context.Background(), report)
		assert.ErrorContains(mt, err, "failed to save stock report")
	})
}
