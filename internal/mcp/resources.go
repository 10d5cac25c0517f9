package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jwebster45206/chronicle/pkg/era"
)

const uriScheme = "chronicle://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "eras",
		Name:        "eras",
		Description: "The historical eras and their region names",
		MIMEType:    "application/json",
	}, s.handleErasResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "eras/{eraId}",
		Name:        "era-world",
		Description: "An era expanded into its regions",
		MIMEType:    "application/json",
	}, s.handleWorldResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "eras/{eraId}/regions/{regionId}",
		Name:        "region-description",
		Description: "The description of one region",
		MIMEType:    "text/plain",
	}, s.handleRegionResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleErasResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListEras(ctx, nil, ListErasInput{})
	if err != nil {
		return nil, fmt.Errorf("listing eras: %w", err)
	}
	return jsonResource(req.Params.URI, out.Eras)
}

func (s *Server) handleWorldResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	eraID, regionID := parseEraURI(req.Params.URI)
	if eraID == "" || regionID != "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	_, world, err := s.handleGetEra(ctx, nil, EraInput{EraID: eraID})
	if err != nil {
		if errors.Is(err, era.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, err
	}
	return jsonResource(req.Params.URI, world)
}

func (s *Server) handleRegionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	eraID, regionID := parseEraURI(req.Params.URI)
	if eraID == "" || regionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cat, err := s.catalog(ctx, eraID)
	if err == nil {
		var region era.Region
		region, err = cat.Region(eraID, regionID)
		if err == nil {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     region.Description,
				}},
			}, nil
		}
	}
	if errors.Is(err, era.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return nil, err
}

// parseEraURI splits chronicle://eras/{eraId}[/regions/{regionId}]. Both
// results are empty when uri has another shape.
func parseEraURI(uri string) (eraID, regionID string) {
	const prefix = uriScheme + "eras/"
	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		return parts[0], ""
	case len(parts) == 3 && parts[0] != "" && parts[1] == "regions" && parts[2] != "":
		return parts[0], parts[2]
	default:
		return "", ""
	}
}
