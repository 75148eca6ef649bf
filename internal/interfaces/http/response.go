package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

var validate = validator.New()

// errorStatus traduce errores de dominio a status HTTP y código de error.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidMovementType, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE"},
	{domain.ErrInvalidItemType, fiber.StatusBadRequest, "INVALID_ITEM_TYPE"},
	{domain.ErrInvalidPeriod, fiber.StatusBadRequest, "INVALID_PERIOD"},
	{domain.ErrItemNotFound, fiber.StatusNotFound, "ITEM_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConcurrentRegeneration, fiber.StatusConflict, "CONCURRENT_REGENERATION"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError escribe el error en el formato {success:false, code, message}.
// Los errores no mapeados responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// respondData envuelve data en {success:true, data}.
func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.DataResponse{Success: true, Data: data})
}

// parseBody decodifica el JSON del body y aplica las reglas `validate` del DTO.
// Los fallos se devuelven envueltos en domain.ErrInvalidInput (400).
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

// validationMessage resume los errores del validator: "campo: regla".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// ErrorHandler manejador global de Fiber: errores de ruteo y panics recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			if fe.Code == fiber.StatusNotFound {
				code = "ROUTE_NOT_FOUND"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}
