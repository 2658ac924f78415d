// Package mongo constructs the document-store client used by the
// repositories. Connection retries happen here so callers see either a
// verified connection or an error.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrNotReady is returned when the server does not answer a ping
	// within the configured retry budget.
	ErrNotReady = errors.New("mongo did not become ready within the given time period")
	// ErrHealthcheckFailed is returned by the liveness probe.
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
)

// Config holds the document-store connection settings.
type Config struct {
	ConnectionURL  string        `env:"DB_URL" envDefault:"mongodb://localhost:27017"` // ConnectionURL is the mongodb:// URL of the server.
	Database       string        `env:"DB_DATABASE" envDefault:"files_manager"`        // Database is the database holding the users and files collections.
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`           // ConnectTimeout bounds the initial dial.
	RetryAttempts  int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`              // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval  time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`             // RetryInterval is the pause between attempts.
}

// Connect dials the server and verifies it with a ping, retrying per
// the config. It returns a handle on the configured database.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout)

	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(ctx)
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// Healthcheck returns a liveness probe for the given client, suitable
// for the status endpoint.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
