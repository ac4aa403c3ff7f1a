package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/evenoes/grib-api/internal/grib"
)

var validate = validator.New()

// GribService is what the routes need from the extraction layer.
type GribService interface {
	WaveData(ctx context.Context, area string) (*grib.GribResponse, error)
	WindData(ctx context.Context, area string) ([]*grib.GribResponse, error)
	CurrentData(ctx context.Context, area string) ([]*grib.GribResponse, error)
	PrecipitationData(ctx context.Context, area string) (*grib.GribResponse, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service GribService) {
	weather := app.Group("/api/weather")

	weather.Get("/waves/:area", func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp, err := service.WaveData(c.Context(), area)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(resp)
	})

	weather.Get("/wind/:area", func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		responses, err := service.WindData(c.Context(), area)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(responses)
	})

	weather.Get("/current/:area", func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		responses, err := service.CurrentData(c.Context(), area)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(responses)
	})

	weather.Get("/precipitation/:area", func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp, err := service.PrecipitationData(c.Context(), area)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(resp)
	})
}

// areaParam holds the validated path parameter naming a met.no grib area
// (e.g. "west_norway").
type areaParam struct {
	Area string `validate:"required,max=64,printascii"`
}

func parseArea(c *fiber.Ctx) (string, error) {
	p := areaParam{Area: c.Params("area")}
	if err := validate.Struct(p); err != nil {
		return "", errors.New("invalid area parameter")
	}
	return p.Area, nil
}

// mapServiceError translates extraction failures to HTTP statuses. A
// dataset we downloaded but cannot geo-reference or walk is an upstream
// data problem, not a client error.
func mapServiceError(err error) error {
	if errors.Is(err, grib.ErrAxisNotFound) || errors.Is(err, grib.ErrUnsupportedRank) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
