package repository

import (
	"context"
	"fmt"

	"tokumei_bot/internal/slack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const submissionCounterID = "submission_id"

// MongoSubmissionRepository 投稿记录数据访问层（MongoDB 实现）
// ID 由 counters 集合原子自增生成
type MongoSubmissionRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoSubmissionRepository 创建投稿记录 Repository
func NewMongoSubmissionRepository(db *mongo.Database, collectionName string) SubmissionRepository {
	if collectionName == "" {
		collectionName = "slack_messages"
	}
	return &MongoSubmissionRepository{
		collection: db.Collection(collectionName),
		counters:   db.Collection("counters"),
	}
}

// Append 分配自增 ID 后插入投稿记录
func (r *MongoSubmissionRepository) Append(ctx context.Context, submission *models.Submission) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, storageErr("append", err)
	}

	record := *submission
	record.ID = id
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return 0, storageErr("append", fmt.Errorf("failed to insert submission: %w", err))
	}

	submission.ID = id
	return id, nil
}

// nextID 原子递增计数器并返回新值
func (r *MongoSubmissionRepository) nextID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": submissionCounterID}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to allocate submission id: %w", err)
	}
	return doc.Seq, nil
}

// Ping 验证与 MongoDB 的连接
func (r *MongoSubmissionRepository) Ping(ctx context.Context) error {
	if err := r.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// EnsureSchema 确保索引存在
func (r *MongoSubmissionRepository) EnsureSchema(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "received_at", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "channel_id", Value: 1},
				{Key: "received_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "received_at", Value: -1},
			},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return storageErr("ensure schema", fmt.Errorf("failed to create indexes: %w", err))
	}
	return nil
}
