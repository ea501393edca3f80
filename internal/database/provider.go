package database

import (
	"context"
	"sync"
	"time"

	"github.com/feedbackwall/feedback-service/pkg/logger"
	"github.com/feedbackwall/feedback-service/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"
)

// ConnectFunc opens a MongoDB client.
type ConnectFunc func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

// Provider holds the one process-wide MongoDB client. The client is opened on
// first use; concurrent first callers share a single in-flight attempt. A
// failed attempt is not cached, so the next caller tries again.
type Provider struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration
	connect    ConnectFunc

	mu     sync.RWMutex
	client *mongo.Client
	closed bool
	group  singleflight.Group
}

// NewProvider returns a Provider that connects with ConnectMongo.
func NewProvider(uri, database, collection string, timeout time.Duration) *Provider {
	return &Provider{
		uri:        uri,
		database:   database,
		collection: collection,
		timeout:    timeout,
		connect:    ConnectMongo,
	}
}

// WithConnectFunc replaces the dialer. Intended for tests.
func (p *Provider) WithConnectFunc(fn ConnectFunc) *Provider {
	p.connect = fn
	return p
}

func (p *Provider) cached() (*mongo.Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client, p.closed
}

// Client returns the shared client, connecting if needed.
func (p *Provider) Client(ctx context.Context) (*mongo.Client, error) {
	if c, closed := p.cached(); c != nil {
		return c, nil
	} else if closed {
		return nil, ErrProviderClosed
	}

	ch := p.group.DoChan("mongo", func() (interface{}, error) {
		if c, _ := p.cached(); c != nil {
			return c, nil
		}
		// the attempt outlives any single caller; it is bounded by p.timeout
		c, err := p.connect(context.WithoutCancel(ctx), p.uri, p.timeout)
		if err != nil {
			metrics.StoreConnects.WithLabelValues("error").Inc()
			logger.Warnf("mongo connect failed: %v", err)
			return nil, err
		}
		metrics.StoreConnects.WithLabelValues("ok").Inc()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			_ = c.Disconnect(context.Background())
			return nil, ErrProviderClosed
		}
		p.client = c
		logger.Infof("mongo connected (database=%s)", p.database)
		return c, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Collection returns the configured feedback collection.
func (p *Provider) Collection(ctx context.Context) (*mongo.Collection, error) {
	c, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(p.database).Collection(p.collection), nil
}

// Connected reports whether a client has been established.
func (p *Provider) Connected() bool {
	c, _ := p.cached()
	return c != nil
}

// Close disconnects the shared client. Later calls to Client fail.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	c := p.client
	p.client = nil
	p.closed = true
	p.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Disconnect(ctx)
}
