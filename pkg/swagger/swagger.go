// Package swagger generates the OpenAPI document of the REST routes and
// publishes it through the swag registry, where echo-swagger and the MCP
// server info lookup read it.
package swagger

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/swaggo/swag"
)

type SwaggerSpec struct {
	Paths   map[string]SwaggerPath `json:"paths"`
	Info    *SwaggerInfo           `json:"info"`
	OpenAPI string                 `json:"openapi"`
}

type SwaggerInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type SwaggerPath map[string]SwaggerOperation

type SwaggerOperation struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Route describes one REST operation to document
type Route struct {
	Request     any
	Responses   map[int]any
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
}

// Document is a generated OpenAPI document
type Document struct {
	raw string
}

// ReadDoc returns the JSON document. It satisfies swag.Swagger.
func (d *Document) ReadDoc() string {
	return d.raw
}

// Build generates an OpenAPI 3 document for the given routes
func Build(info SwaggerInfo, routes []Route) (*Document, error) {
	reflector := openapi3.NewReflector()
	reflector.SpecEns().Info.
		WithTitle(info.Title).
		WithVersion(info.Version).
		WithDescription(info.Description)

	for _, route := range routes {
		oc, err := reflector.NewOperationContext(route.Method, route.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create operation %s %s: %w", route.Method, route.Path, err)
		}

		oc.SetSummary(route.Summary)
		oc.SetDescription(route.Description)
		oc.SetTags(route.Tags...)

		if route.Request != nil {
			oc.AddReqStructure(route.Request)
		}
		for status, response := range route.Responses {
			oc.AddRespStructure(response, openapi.WithHTTPStatus(status))
		}

		if err := reflector.AddOperation(oc); err != nil {
			return nil, fmt.Errorf("failed to add operation %s %s: %w", route.Method, route.Path, err)
		}
	}

	raw, err := reflector.SpecEns().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI document: %w", err)
	}

	return &Document{raw: string(raw)}, nil
}

// registry is registered once with swag and serves whatever document was published last
type registry struct {
	doc atomic.Pointer[Document]
}

func (r *registry) ReadDoc() string {
	if doc := r.doc.Load(); doc != nil {
		return doc.ReadDoc()
	}
	return ""
}

var (
	published    = &registry{}
	registerOnce sync.Once
)

// Publish makes doc available under the default swag instance name
func Publish(doc *Document) {
	published.doc.Store(doc)
	registerOnce.Do(func() {
		swag.Register(swag.Name, published)
	})
}

// GetSwaggerSpec retrieves the published document from swag
func GetSwaggerSpec() (*SwaggerSpec, error) {
	info := swag.GetSwagger(swag.Name)
	if info == nil {
		return nil, fmt.Errorf("swagger documentation not found - make sure the REST routes are published")
	}

	swaggerJSON := info.ReadDoc()
	if swaggerJSON == "" {
		return nil, fmt.Errorf("swagger documentation is empty")
	}

	var spec SwaggerSpec
	if err := sonic.UnmarshalString(swaggerJSON, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse swagger JSON: %w", err)
	}

	return &spec, nil
}
