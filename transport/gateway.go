package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-shelf/core"
)

// GatewayConfig wires the outbound pipeline. Adapter overrides the default
// REST adapter; HTTPClient and BaseURL feed the default when Adapter is
// nil.
type GatewayConfig struct {
	BaseURL     string
	HTTPClient  HTTPDoer
	Adapter     core.TransportAdapter
	Credentials core.CredentialStore
	Invalidator core.SessionInvalidator
	Logger      core.Logger
	ErrorMapper core.ErrorMapper
}

// Gateway is the one component every resource call passes through. It owns
// the composed credential decoration and the translation of API error
// payloads into the shelf error envelope.
type Gateway struct {
	adapter  core.TransportAdapter
	logger   core.Logger
	mapError core.ErrorMapper
}

func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.Credentials == nil {
		return nil, core.InternalError("transport: gateway requires a credential store")
	}
	adapter := cfg.Adapter
	if adapter == nil {
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, core.BadInputError("transport: gateway requires a base url")
		}
		adapter = NewRESTAdapter(cfg.HTTPClient, cfg.BaseURL)
	}
	mapError := cfg.ErrorMapper
	if mapError == nil {
		mapError = core.DefaultErrorMapper
	}
	return &Gateway{
		adapter:  WithCredentials(adapter, cfg.Credentials, cfg.Invalidator),
		logger:   glog.Ensure(cfg.Logger),
		mapError: mapError,
	}, nil
}

// Do executes one transport call through the credential decoration and
// returns the raw response. Status codes are not interpreted beyond the
// 401 invalidation the decorator applies; callers that need status
// semantics use the JSON helpers or inspect the response themselves.
func (g *Gateway) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if g == nil || g.adapter == nil {
		return core.TransportResponse{}, core.InternalError("transport: gateway is not configured")
	}
	res, err := g.adapter.Do(ctx, req)
	if err != nil {
		mapped := g.mapError(err)
		g.logger.Error("outbound call failed",
			"method", req.Method,
			"path", req.Path,
			"error", mapped.Error(),
		)
		return res, mapped
	}
	return res, nil
}

// GetJSON issues a GET and decodes a 2xx payload into out.
func (g *Gateway) GetJSON(ctx context.Context, path string, query map[string]string, out any) error {
	return g.roundTripJSON(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes a 2xx payload into
// out when out is non-nil.
func (g *Gateway) PostJSON(ctx context.Context, path string, in any, out any) error {
	return g.roundTripJSON(ctx, http.MethodPost, path, nil, in, out)
}

// PutJSON issues a PUT with a JSON body and decodes a 2xx payload into out
// when out is non-nil.
func (g *Gateway) PutJSON(ctx context.Context, path string, in any, out any) error {
	return g.roundTripJSON(ctx, http.MethodPut, path, nil, in, out)
}

// Delete issues a DELETE and expects a 2xx.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.roundTripJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (g *Gateway) roundTripJSON(
	ctx context.Context,
	method string,
	path string,
	query map[string]string,
	in any,
	out any,
) error {
	req := core.TransportRequest{
		Method:  method,
		Path:    path,
		Query:   query,
		Headers: map[string]string{"Accept": "application/json"},
	}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return core.BadInputError("transport: encode request body: " + err.Error())
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	res, err := g.Do(ctx, req)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return g.statusError(method, path, res)
	}
	if out == nil || len(res.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode response body",
			http.StatusBadGateway,
			map[string]any{"method": method, "path": path},
		)
	}
	return nil
}

func (g *Gateway) statusError(method string, path string, res core.TransportResponse) error {
	detail := decodeErrorDetail(res.Body)
	metadata := map[string]any{
		"method":      method,
		"path":        path,
		"status_code": res.StatusCode,
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return transportError(
			"transport: authentication required",
			goerrors.CategoryAuth,
			http.StatusUnauthorized,
			metadata,
		)
	case res.StatusCode == http.StatusForbidden:
		return transportError(
			withDetail("transport: permission denied", detail),
			goerrors.CategoryAuthz,
			http.StatusForbidden,
			metadata,
		)
	case res.StatusCode == http.StatusNotFound:
		return transportError(
			withDetail("transport: resource not found", detail),
			goerrors.CategoryNotFound,
			http.StatusNotFound,
			metadata,
		)
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return core.ValidationError(withDetail("request rejected", detail)).
			WithMetadata(metadata)
	default:
		return transportError(
			withDetail("transport: resource api failure", detail),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			metadata,
		)
	}
}

// decodeErrorDetail pulls the human-readable message out of DRF-style error
// payloads: either {"detail": "..."} or {"field": ["msg", ...]}.
func decodeErrorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if detail, ok := payload["detail"].(string); ok {
		return strings.TrimSpace(detail)
	}
	if message, ok := payload["message"].(string); ok {
		return strings.TrimSpace(message)
	}
	parts := make([]string, 0, len(payload))
	for field, value := range payload {
		switch typed := value.(type) {
		case string:
			parts = append(parts, field+": "+typed)
		case []any:
			for _, item := range typed {
				if s, ok := item.(string); ok {
					parts = append(parts, field+": "+s)
				}
			}
		}
	}
	return strings.Join(parts, "; ")
}

func withDetail(message string, detail string) string {
	if strings.TrimSpace(detail) == "" {
		return message
	}
	return message + ": " + strings.TrimSpace(detail)
}
