package userservice

import (
	"context"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoModel is the document store Repository. Owned blog ids are kept on the
// user document and resolved against the blogs collection on read.
type MongoModel struct {
	users *mongo.Collection
}

func NewMongoModel(db *mongo.Database) *MongoModel {
	return &MongoModel{users: db.Collection(common.UsersCollection)}
}

type userDocument struct {
	ID        string                `bson:"_id"`
	Username  string                `bson:"username"`
	Name      string                `bson:"name"`
	Password  []byte                `bson:"password"`
	BlogIDs   []string              `bson:"blogs"`
	CreatedAt time.Time             `bson:"created_at"`
	BlogDocs  []blogSummaryDocument `bson:"blog_docs,omitempty"`
}

type blogSummaryDocument struct {
	ID     string `bson:"_id"`
	Title  string `bson:"title"`
	URL    string `bson:"url"`
	Author string `bson:"author"`
}

// EnsureIndexes creates the unique username index.
func (m *MongoModel) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *MongoModel) FindAll(ctx context.Context) ([]User, error) {
	return m.find(ctx, bson.D{})
}

func (m *MongoModel) FindByID(ctx context.Context, id string) (*User, error) {
	return m.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (m *MongoModel) FindByUsername(ctx context.Context, username string) (*User, error) {
	return m.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (m *MongoModel) findOne(ctx context.Context, filter bson.D) (*User, error) {
	users, err := m.find(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &users[0], nil
}

func (m *MongoModel) find(ctx context.Context, filter bson.D) ([]User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "username", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: common.BlogsCollection},
			{Key: "localField", Value: "blogs"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "blog_docs"},
		}}},
	}

	cur, err := m.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.user())
	}

	return users, nil
}

func (m *MongoModel) Insert(ctx context.Context, u *User) error {
	if u.BlogIDs == nil {
		u.BlogIDs = []string{}
	}
	u.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	doc := userDocument{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Password:  u.Password.hash,
		BlogIDs:   u.BlogIDs,
		CreatedAt: u.CreatedAt,
	}

	_, err := m.users.InsertOne(ctx, doc)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *MongoModel) AddBlog(ctx context.Context, userID, blogID string) error {
	return m.update(ctx, userID, bson.D{{Key: "$push", Value: bson.D{{Key: "blogs", Value: blogID}}}})
}

func (m *MongoModel) RemoveBlog(ctx context.Context, userID, blogID string) error {
	return m.update(ctx, userID, bson.D{{Key: "$pull", Value: bson.D{{Key: "blogs", Value: blogID}}}})
}

func (m *MongoModel) update(ctx context.Context, userID string, update bson.D) error {
	res, err := m.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: userID}}, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (d userDocument) user() User {
	u := User{
		ID:        d.ID,
		Username:  d.Username,
		Name:      d.Name,
		Password:  Password{hash: d.Password},
		BlogIDs:   d.BlogIDs,
		Blogs:     make([]BlogSummary, 0, len(d.BlogDocs)),
		CreatedAt: d.CreatedAt,
	}

	if u.BlogIDs == nil {
		u.BlogIDs = []string{}
	}

	for _, b := range d.BlogDocs {
		u.Blogs = append(u.Blogs, BlogSummary{ID: b.ID, Title: b.Title, URL: b.URL, Author: b.Author})
	}

	return u
}
