package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Conn        *Connection
	Collections *CollectionNames
	Logger      *slog.Logger
}

// CollectionNames holds dynamically prefixed collection names
type CollectionNames struct {
	Folders    string
	Categories string
	Gallery    string
	Images     string
	Inventory  string
}

// NewCollectionNames creates collection names with the given prefix.
// Unprefixed names match the collections the storefront has always used.
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Folders:    fmt.Sprintf("%sfolders", prefix),
		Categories: fmt.Sprintf("%scategories", prefix),
		Gallery:    fmt.Sprintf("%sgalleries", prefix),
		Images:     fmt.Sprintf("%simages", prefix),
		Inventory:  fmt.Sprintf("%sinventories", prefix),
	}
}

// All lists every collection name
func (c *CollectionNames) All() []string {
	return []string{c.Folders, c.Categories, c.Gallery, c.Images, c.Inventory}
}

// Connection is the process-wide database handle. It is created by the
// binary, handed to every repository and closed on shutdown.
//
// The driver pools connections and reconnects on its own, so one client
// serves the whole process.
type Connection struct {
	uri      string
	database string
	logger   *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection creates an unconnected handle
func NewConnection(uri, database string, logger *slog.Logger) *Connection {
	return &Connection{uri: uri, database: database, logger: logger}
}

// EnsureConnected connects on first use and returns the same database on
// every later call. A failed attempt is not remembered; the next call
// tries again.
//
// The dial runs without holding mu, so a slow server never blocks callers
// that already have a database. When two first calls race, the first
// client stored wins and the other is disconnected.
func (c *Connection) EnsureConnected(ctx context.Context) (*mongo.Database, error) {
	if db := c.current(); db != nil {
		return db, nil
	}

	client, err := connect(ctx, c.uri)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.db != nil {
		db := c.db
		c.mu.Unlock()
		_ = client.Disconnect(context.Background())
		return db, nil
	}
	c.client = client
	c.db = client.Database(c.database)
	db := c.db
	c.mu.Unlock()

	c.logger.Info("connected to mongodb", "database", c.database)
	return db, nil
}

func (c *Connection) current() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// Ping checks the server answers, connecting first if needed
func (c *Connection) Ping(ctx context.Context) error {
	db, err := c.EnsureConnected(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects. A closed Connection reconnects on next use.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	if err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(1).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

// collection resolves one named collection through the shared Connection.
// Every repository embeds one.
type collection struct {
	conn *Connection
	name string
}

func newCollection(config *RepositoryConfig, name string) collection {
	return collection{conn: config.Conn, name: name}
}

func (c collection) get(ctx context.Context) (*mongo.Collection, error) {
	db, err := c.conn.EnsureConnected(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(c.name), nil
}
