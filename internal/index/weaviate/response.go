package weaviateindex

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/vcatlas/vcatlas/internal/index"
)

// graphqlError flattens GraphQL-level errors, which arrive with a nil
// transport error.
func graphqlError(resp *models.GraphQLResponse) error {
	if resp == nil {
		return fmt.Errorf("weaviate: nil graphql response")
	}
	if len(resp.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		if e != nil {
			msgs = append(msgs, e.Message)
		}
	}
	return fmt.Errorf("weaviate: graphql: %s", strings.Join(msgs, "; "))
}

func classObjects(resp *models.GraphQLResponse, class string) ([]any, error) {
	get, ok := resp.Data["Get"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("weaviate: response missing Get block")
	}
	objs, ok := get[class].([]any)
	if !ok {
		return nil, fmt.Errorf("weaviate: response missing class %s", class)
	}
	return objs, nil
}

func parseNames(resp *models.GraphQLResponse, class string) ([]string, error) {
	objs, err := classObjects(resp, class)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		props, ok := o.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := props["vc_name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func parseMatches(resp *models.GraphQLResponse, class string) ([]index.Match, error) {
	objs, err := classObjects(resp, class)
	if err != nil {
		return nil, err
	}
	matches := make([]index.Match, 0, len(objs))
	for _, o := range objs {
		props, ok := o.(map[string]any)
		if !ok {
			continue
		}
		var m index.Match
		m.VCName, _ = props["vc_name"].(string)
		if add, ok := props["_additional"].(map[string]any); ok {
			switch d := add["distance"].(type) {
			case float64:
				m.Distance = d
			case json.Number:
				m.Distance, _ = d.Float64()
			}
		}
		matches = append(matches, m)
	}
	return matches, nil
}
