package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domcart "example.com/shop-admin/app/internal/domain/cart"
)

const cartsCollection = "carts"

// Collection is the part of *mongo.Collection the cart store calls.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// Connect dials uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type cartItemDocument struct {
	ProductID string `bson:"productId"`
	Name      string `bson:"name"`
	Variant   string `bson:"variant"`
	Price     string `bson:"price"`
	Quantity  int64  `bson:"quantity"`
	Image     string `bson:"image"`
}

type cartDocument struct {
	CartID      string             `bson:"_id"`
	Items       []cartItemDocument `bson:"items"`
	TotalAmount string             `bson:"totalAmount"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// CartRepository stores one document per cart with the cart id as _id.
// Money is kept as decimal strings.
type CartRepository struct {
	coll Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func NewCartRepositoryWithCollection(coll Collection) *CartRepository {
	return &CartRepository{coll: coll}
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	var doc cartDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": cartID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domcart.ErrCartNotFound
		}
		return nil, err
	}
	return fromDocument(doc)
}

func (r *CartRepository) Save(ctx context.Context, c *domcart.Cart) error {
	doc := toDocument(c)
	doc.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.CartID}, doc, options.Replace().SetUpsert(true))
	return err
}

func toDocument(c *domcart.Cart) cartDocument {
	doc := cartDocument{
		CartID:      c.CartID,
		Items:       make([]cartItemDocument, 0, len(c.Items)),
		TotalAmount: c.TotalAmount.String(),
	}
	for _, it := range c.Items {
		doc.Items = append(doc.Items, cartItemDocument{
			ProductID: it.ProductID,
			Name:      it.Name,
			Variant:   it.Variant,
			Price:     it.Price.String(),
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return doc
}

func fromDocument(doc cartDocument) (*domcart.Cart, error) {
	c := domcart.New(doc.CartID)
	for _, it := range doc.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("cart %s: price of %s: %w", doc.CartID, it.ProductID, err)
		}
		c.Items = append(c.Items, domcart.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Variant:   it.Variant,
			Price:     price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	if doc.TotalAmount != "" {
		total, err := decimal.NewFromString(doc.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("cart %s: total: %w", doc.CartID, err)
		}
		c.TotalAmount = total
	}
	return c, nil
}
