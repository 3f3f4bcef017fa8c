package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// v2Payload wraps a request body in the v2 "data" envelope.
func v2Payload(data interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data}
}

// decodeV2 unmarshals a single-resource v2 envelope and returns its data.
func decodeV2[T any](resp *http.Response, what string) (*T, error) {
	var envelope communet.V2Response[T]

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &envelope.Data, nil
}

// decodeList unmarshals a v2 collection envelope.
func decodeList[T any](resp *http.Response, what string) (*communet.ListResponse[T], error) {
	var list communet.ListResponse[T]

	err := json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", what, err)
	}

	return &list, nil
}

// listViaSearch runs the LiQL query rendered from params against the search
// endpoint. All v2 collection reads go through here.
func listViaSearch[T any](ctx context.Context, httpClient *http.Client, collection string, params *communet.ListParams) (*communet.ListResponse[T], error) {
	query := params.ToQuery(collection)

	err := query.Validate()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("q", query.String())

	resp, err := httpClient.Get(ctx, constants.APIPathSearch, values)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}

	return decodeList[T](resp, collection)
}

// normalizeV2 turns a buffered v2 response into a NormalizedResult. Error
// statuses from the platform are normalized rather than raised, so callers
// can project the outcome; only transport failures surface as errors.
func normalizeV2(resp *http.Response, reqErr error, translate bool) (*communet.NormalizedResult, error) {
	if resp == nil {
		return nil, reqErr
	}

	result, err := communet.ParseV2Response(resp.Body, resp.StatusCode, translate)
	if err != nil {
		return nil, err
	}

	// Keep the transport response around so FullResponse projections can
	// hand it back to the caller.
	result.Raw = resp

	return result, nil
}
