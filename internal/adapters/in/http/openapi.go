package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// OpenAPI is the loaded and validated API description.
type OpenAPI struct {
	doc  *openapi3.T
	json []byte
}

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*OpenAPI, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	return &OpenAPI{doc: doc, json: data}, nil
}

// JSON returns the document as served on /openapi.json.
func (o *OpenAPI) JSON() []byte {
	return o.json
}

// ReadDoc implements swag.Swagger so the Swagger UI can serve the document.
func (o *OpenAPI) ReadDoc() string {
	return string(o.json)
}

// Schema returns a named component schema.
func (o *OpenAPI) Schema(name string) (*openapi3.Schema, error) {
	ref, ok := o.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("schema %q is not defined", name)
	}
	return ref.Value, nil
}

var registerOnce sync.Once

// registerSwagger makes the document available to echo-swagger. swag keeps a
// process-wide registry that panics on duplicate names, so only the first
// document is registered.
func registerSwagger(o *OpenAPI) {
	registerOnce.Do(func() {
		swag.Register(swag.Name, o)
	})
}
