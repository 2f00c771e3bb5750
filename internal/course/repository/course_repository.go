package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lms-backend/internal/course/domain"
)

// contentProjection excludes the fields reserved for enrolled users from
// the public list/detail reads.
var contentProjection = bson.M{
	"courseData.videoUrl":   0,
	"courseData.suggestion": 0,
	"courseData.questions":  0,
	"courseData.links":      0,
}

type mongoCourseRepository struct {
	col *mongo.Collection
}

// NewCourseRepository creates a mongo-backed course repository.
func NewCourseRepository(db *mongo.Database) CourseRepository {
	return &mongoCourseRepository{
		col: db.Collection("courses"),
	}
}

func (r *mongoCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	course.ID = primitive.NewObjectID().Hex()
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()
	_, err := r.col.InsertOne(ctx, course)
	return err
}

func (r *mongoCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	return err
}

func (r *mongoCourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	return r.findByID(ctx, id, nil)
}

func (r *mongoCourseRepository) FindByIDProjected(ctx context.Context, id string) (*domain.Course, error) {
	return r.findByID(ctx, id, contentProjection)
}

func (r *mongoCourseRepository) findByID(ctx context.Context, id string, projection bson.M) (*domain.Course, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var course domain.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *mongoCourseRepository) FindAllProjected(ctx context.Context) ([]domain.Course, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(contentProjection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []domain.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *mongoCourseRepository) PushQuestion(ctx context.Context, courseID, contentID string, question domain.Question) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": courseID, "courseData._id": contentID},
		bson.M{"$push": bson.M{"courseData.$.questions": question}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoCourseRepository) PushReply(ctx context.Context, courseID, contentID, questionID string, reply domain.Reply) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{"$push": bson.M{"courseData.$[c].questions.$[q].questionReplies": reply}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"c._id": contentID},
				bson.M{"q._id": questionID},
			},
		}),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
