package http

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce sync.Once
	spec     *openapi3.T
	specErr  error
)

// Spec parses and validates the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		spec, specErr = loader.LoadFromData(rawSpec)
		if specErr == nil {
			specErr = spec.Validate(loader.Context)
		}
	})
	return spec, specErr
}

// APIVersion is the info.version of the embedded document, or "unknown".
func APIVersion() string {
	doc, err := Spec()
	if err != nil || doc.Info == nil {
		return "unknown"
	}
	return doc.Info.Version
}
