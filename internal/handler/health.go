package handler

import (
	"bytes"
	"context"

	"github.com/tripjournal/backend/internal/handler/gen"
	"github.com/tripjournal/backend/spec"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded API description.
func (s *Server) GetOpenAPI(ctx context.Context, _ gen.GetOpenAPIRequestObject) (gen.GetOpenAPIResponseObject, error) {
	return gen.GetOpenAPI200ApplicationyamlResponse{
		Body:          bytes.NewReader(spec.OpenAPI),
		ContentLength: int64(len(spec.OpenAPI)),
	}, nil
}
