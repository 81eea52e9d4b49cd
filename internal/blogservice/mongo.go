package blogservice

import (
	"context"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoModel is the document store Repository. The owner is stored by id and
// joined from the users collection on read.
type MongoModel struct {
	blogs *mongo.Collection
}

func NewMongoModel(db *mongo.Database) *MongoModel {
	return &MongoModel{blogs: db.Collection(common.BlogsCollection)}
}

type blogDocument struct {
	ID        string         `bson:"_id"`
	Title     string         `bson:"title"`
	URL       string         `bson:"url"`
	Author    string         `bson:"author"`
	Likes     int            `bson:"likes"`
	UserID    string         `bson:"user"`
	CreatedAt time.Time      `bson:"created_at"`
	Owner     *ownerDocument `bson:"owner,omitempty"`
}

type ownerDocument struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
	Name     string `bson:"name"`
}

// EnsureIndexes creates the owner index used by FindByUserID.
func (m *MongoModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.blogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("blogs_user_idx"),
	})
	return err
}

func (m *MongoModel) Insert(ctx context.Context, b *Blog) error {
	b.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	doc := blogDocument{
		ID:        b.ID,
		Title:     b.Title,
		URL:       b.URL,
		Author:    b.Author,
		Likes:     b.Likes,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	}

	_, err := m.blogs.InsertOne(ctx, doc)
	return err
}

func (m *MongoModel) FindAll(ctx context.Context) ([]Blog, error) {
	return m.find(ctx, bson.D{})
}

func (m *MongoModel) FindByUserID(ctx context.Context, userID string) ([]Blog, error) {
	return m.find(ctx, bson.D{{Key: "user", Value: userID}})
}

func (m *MongoModel) FindByID(ctx context.Context, id string) (*Blog, error) {
	blogs, err := m.find(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &blogs[0], nil
}

func (m *MongoModel) UpdateLikes(ctx context.Context, id string, likes int) (*Blog, error) {
	res, err := m.blogs.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "likes", Value: likes}}}},
	)
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		return nil, common.ErrRecordNotFound
	}

	return m.FindByID(ctx, id)
}

func (m *MongoModel) Delete(ctx context.Context, id string) error {
	res, err := m.blogs.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *MongoModel) find(ctx context.Context, filter bson.D) ([]Blog, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: common.UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "owner.password", Value: 0}, {Key: "owner.blogs", Value: 0}}}},
	}

	cur, err := m.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blogs := []Blog{}
	for cur.Next(ctx) {
		var doc blogDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		blogs = append(blogs, doc.blog())
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (d blogDocument) blog() Blog {
	b := Blog{
		ID:        d.ID,
		Title:     d.Title,
		URL:       d.URL,
		Author:    d.Author,
		Likes:     d.Likes,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}

	if d.Owner != nil {
		b.User = &Owner{ID: d.Owner.ID, Username: d.Owner.Username, Name: d.Owner.Name}
	}

	return b
}
