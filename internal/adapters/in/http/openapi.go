package http

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the OpenAPI document
// with 400. Routes the document does not describe pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) {
					return next(c)
				}
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
						Code:    http.StatusMethodNotAllowed,
						Message: err.Error(),
					})
				}
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}
			return next(c)
		}
	}, nil
}

// swaggerDoc serves the embedded document to echo-swagger as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

var registerOnce sync.Once

// RegisterSwagger makes doc available under swag's default instance name, the
// one echo-swagger reads.
func RegisterSwagger(doc *openapi3.T) error {
	b, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(b)})
	})
	return nil
}
