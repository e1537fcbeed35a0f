package http

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// orderIDParam binds the orderId path parameter the way generated servers do.
func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func stringParam(c echo.Context, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
