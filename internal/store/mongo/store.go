// Package mongo implements store.Store on a MongoDB collection. Each
// evaluation is a single self-contained document; inserts are atomic and no
// multi-document transactions are needed.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salesdojo/roleplay-eval/internal/models"
	"github.com/salesdojo/roleplay-eval/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "evaluations"

type Store struct {
	collection *mongo.Collection
}

func NewStore(client *mongo.Client, database string) *Store {
	return &Store{
		collection: client.Database(database).Collection(collectionName),
	}
}

// evaluationDoc is the persisted shape. The result subdocument uses the same
// field names as the JSON contract so stored documents read naturally in
// queries and dashboards.
type evaluationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"userId,omitempty"`
	RoleplayText string             `bson:"roleplayText"`
	Result       *scoreResultDoc    `bson:"result,omitempty"`
	ModelName    string             `bson:"modelName,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type scoreResultDoc struct {
	OverallScore float64     `bson:"overallScore"`
	Scores       scoresDoc   `bson:"scores"`
	Feedback     feedbackDoc `bson:"feedback"`
}

type scoresDoc struct {
	Empathy          float64 `bson:"empathy"`
	Clarity          float64 `bson:"clarity"`
	ProductKnowledge float64 `bson:"productKnowledge"`
}

type feedbackDoc struct {
	Summary             string   `bson:"summary"`
	Strengths           []string `bson:"strengths"`
	AreasForImprovement []string `bson:"areasForImprovement"`
}

// CreateEvaluation inserts the record and returns a copy carrying the
// store-assigned ID and creation timestamp (UTC).
func (s *Store) CreateEvaluation(ctx context.Context, record *models.Evaluation) (*models.Evaluation, error) {
	doc := toDoc(record)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC()

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert evaluation: %w", err)
	}

	return fromDoc(doc), nil
}

// FindEvaluations returns at most limit records matching the filter, newest
// first.
func (s *Store) FindEvaluations(ctx context.Context, filter store.Filter, limit int) ([]models.Evaluation, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []evaluationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode evaluations: %w", err)
	}

	records := make([]models.Evaluation, 0, len(docs))
	for i := range docs {
		records = append(records, *fromDoc(&docs[i]))
	}

	return records, nil
}

// FindEvaluationByID looks up a single record by its hex ID. A malformed ID
// is indistinguishable from an absent record to the caller.
func (s *Store) FindEvaluationByID(ctx context.Context, id string) (*models.Evaluation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc evaluationDoc
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluation %s: %w", id, err)
	}

	return fromDoc(&doc), nil
}

func toDoc(record *models.Evaluation) *evaluationDoc {
	doc := &evaluationDoc{
		UserID:       record.UserID,
		RoleplayText: record.RoleplayText,
		ModelName:    record.ModelName,
	}

	if record.Result != nil {
		doc.Result = &scoreResultDoc{
			OverallScore: record.Result.OverallScore,
			Scores: scoresDoc{
				Empathy:          record.Result.Scores.Empathy,
				Clarity:          record.Result.Scores.Clarity,
				ProductKnowledge: record.Result.Scores.ProductKnowledge,
			},
			Feedback: feedbackDoc{
				Summary:             record.Result.Feedback.Summary,
				Strengths:           record.Result.Feedback.Strengths,
				AreasForImprovement: record.Result.Feedback.AreasForImprovement,
			},
		}
	}

	return doc
}

func fromDoc(doc *evaluationDoc) *models.Evaluation {
	record := &models.Evaluation{
		ID:           doc.ID.Hex(),
		UserID:       doc.UserID,
		RoleplayText: doc.RoleplayText,
		ModelName:    doc.ModelName,
		CreatedAt:    doc.CreatedAt,
	}

	if doc.Result != nil {
		record.Result = &models.ScoreResult{
			OverallScore: doc.Result.OverallScore,
			Scores: models.Scores{
				Empathy:          doc.Result.Scores.Empathy,
				Clarity:          doc.Result.Scores.Clarity,
				ProductKnowledge: doc.Result.Scores.ProductKnowledge,
			},
			Feedback: models.Feedback{
				Summary:             doc.Result.Feedback.Summary,
				Strengths:           doc.Result.Feedback.Strengths,
				AreasForImprovement: doc.Result.Feedback.AreasForImprovement,
			},
		}
	}

	return record
}
