package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Document is a validated OpenAPI description rendered once as JSON.
type Document struct {
	Title   string
	Version string
	raw     []byte
}

// Load parses and validates an OpenAPI 3 document given as YAML or JSON.
func Load(ctx context.Context, data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	d := &Document{raw: raw}
	if doc.Info != nil {
		d.Title = doc.Info.Title
		d.Version = doc.Info.Version
	}
	return d, nil
}

func (d *Document) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.raw)
}

// Handler serves the Swagger UI pointed at /openapi.json.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)
}
