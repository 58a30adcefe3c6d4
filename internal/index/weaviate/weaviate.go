// Package weaviateindex implements index.Index against a Weaviate
// collection with a cluster-side text2vec-openai vectorizer.
package weaviateindex

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	wv "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/vcatlas/vcatlas/internal/index"
	"github.com/vcatlas/vcatlas/internal/vc"
)

// DefaultClass is the collection name used when none is configured.
const DefaultClass = "VentureCapital"

// Config holds connection settings for the Weaviate cluster.
type Config struct {
	// URL is the cluster endpoint, e.g. https://demo.weaviate.network.
	// A bare host is treated as https.
	URL    string
	APIKey string
	// OpenAIAPIKey is forwarded per request so the text2vec-openai
	// vectorizer can embed on the cluster side.
	OpenAIAPIKey string
	Class        string
}

// Client is an index.Index backed by Weaviate. It is created once at
// startup and shared across requests.
type Client struct {
	client *wv.Client
	class  string
}

var _ index.Index = (*Client)(nil)

// New builds a client for the cluster described by cfg. No connection
// is made until the first call.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("weaviate: missing endpoint url")
	}
	raw := cfg.URL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("weaviate: invalid endpoint url %q", cfg.URL)
	}

	class := cfg.Class
	if class == "" {
		class = DefaultClass
	}

	headers := map[string]string{}
	if cfg.OpenAIAPIKey != "" {
		headers["X-OpenAI-Api-Key"] = cfg.OpenAIAPIKey
	}

	client, err := wv.NewClient(wv.Config{
		Host:       u.Host,
		Scheme:     u.Scheme,
		AuthConfig: auth.ApiKey{Value: cfg.APIKey},
		Headers:    headers,
	})
	if err != nil {
		return nil, fmt.Errorf("weaviate: new client: %w", err)
	}
	return &Client{client: client, class: class}, nil
}

// EnsureSchema creates the VC record class if the cluster does not have
// it yet.
func (c *Client) EnsureSchema(ctx context.Context) error {
	exists, err := c.client.Schema().ClassExistenceChecker().WithClassName(c.class).Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate: check class %s: %w", c.class, err)
	}
	if exists {
		return nil
	}
	class := &models.Class{
		Class:      c.class,
		Vectorizer: "text2vec-openai",
		Properties: []*models.Property{
			{Name: "vc_name", DataType: []string{"text"}},
			{Name: "contacts", DataType: []string{"text[]"}},
			{Name: "industries", DataType: []string{"text[]"}},
			{Name: "investment_rounds", DataType: []string{"text[]"}},
		},
	}
	if err := c.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("weaviate: create class %s: %w", c.class, err)
	}
	return nil
}

// Names fetches the vc_name property of every stored object.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	resp, err := c.client.GraphQL().Get().
		WithClassName(c.class).
		WithFields(graphql.Field{Name: "vc_name"}).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate: fetch names: %w", err)
	}
	if err := graphqlError(resp); err != nil {
		return nil, err
	}
	return parseNames(resp, c.class)
}

// Insert stores the record under the given id. Inserting the same id
// twice fails on the cluster; the caller's name check prevents that for
// same-name records.
func (c *Client) Insert(ctx context.Context, id string, record vc.Record) error {
	_, err := c.client.Data().Creator().
		WithClassName(c.class).
		WithID(id).
		WithProperties(record.Properties()).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate: insert %q: %w", record.VCName, err)
	}
	return nil
}

// Similar runs a nearText query and returns up to limit matches with
// their distance, in the order the cluster returns them.
func (c *Client) Similar(ctx context.Context, query string, limit int) ([]index.Match, error) {
	nearText := c.client.GraphQL().NearTextArgBuilder().WithConcepts([]string{query})
	resp, err := c.client.GraphQL().Get().
		WithClassName(c.class).
		WithFields(
			graphql.Field{Name: "vc_name"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
		).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate: near-text query: %w", err)
	}
	if err := graphqlError(resp); err != nil {
		return nil, err
	}
	return parseMatches(resp, c.class)
}
