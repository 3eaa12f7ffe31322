package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

const swaggerInstance = "fulfillment"

var registerSwagger sync.Once

// OpenAPI is the validated API description served to clients.
type OpenAPI struct {
	doc  *openapi3.T
	json []byte
}

// LoadOpenAPI parses and validates the embedded document.
func LoadOpenAPI(ctx context.Context) (*OpenAPI, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &OpenAPI{doc: doc, json: raw}, nil
}

func (o *OpenAPI) Document() *openapi3.T { return o.doc }

// ReadDoc lets swag serve the document to the Swagger UI.
func (o *OpenAPI) ReadDoc() string { return string(o.json) }

// Mount serves the document at /openapi.json and the UI under /swagger/.
func (o *OpenAPI) Mount(e *echo.Echo) {
	registerSwagger.Do(func() { swag.Register(swaggerInstance, o) })

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, o.json)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))
}
