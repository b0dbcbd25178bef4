package repository

import (
	"PerfDash/entity"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SavePerformanceRun(run *entity.PerformanceRun) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(performanceRunsCollection)

	_, err = collection.InsertOne(m.ctx, run)
	if err != nil {
		return fmt.Errorf("mongodb insert performance run: %w", err)
	}
	return nil
}

// GetPerformanceRuns returns the latest runs, newest first.
func (m *MongoDB) GetPerformanceRuns(limit int) ([]entity.PerformanceRun, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(performanceRunsCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(m.ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find performance runs: %w", err)
	}
	defer cursor.Close(m.ctx)

	runs := make([]entity.PerformanceRun, 0, limit)
	if err = cursor.All(m.ctx, &runs); err != nil {
		return nil, fmt.Errorf("mongodb decode performance runs: %w", err)
	}

	return runs, nil
}
