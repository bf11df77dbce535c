package tools

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/bulkimport"
	"github.com/BrunoKrugel/brevo-mcp/pkg/swagger"
)

const ImportRoutePath = "/api/v1/contacts/import"

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes exposes the bulk import as a REST route on e
func RegisterRoutes(e *echo.Echo, client bulkimport.ContactImporter) {
	importer := bulkimport.NewImporter(client)
	e.POST(ImportRoutePath, importHandler(importer))
}

// Routes describes the REST routes for the OpenAPI document
func Routes() []swagger.Route {
	return []swagger.Route{
		{
			Method:      http.MethodPost,
			Path:        ImportRoutePath,
			Summary:     "Import contacts from text",
			Description: "Extracts contacts from pasted text and starts a Brevo import, or previews it when dryRun is set.",
			Tags:        []string{"Contacts"},
			Request:     new(BulkImportArgs),
			Responses: map[int]any{
				http.StatusOK:         new(MessageResponse),
				http.StatusBadRequest: new(ErrorResponse),
				http.StatusBadGateway: new(ErrorResponse),
			},
		},
	}
}

// importHandler serves the route described by Routes
func importHandler(importer *bulkimport.Importer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var args BulkImportArgs
		if err := c.Bind(&args); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		}

		if args.Text == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text is required"})
		}

		outcome, err := importer.Run(c.Request().Context(), args.Text, args.Options())
		if err != nil {
			var importErr *bulkimport.ImportError
			if errors.As(err, &importErr) {
				log.WithError(err).Error("[HTTP] contact import failed")
				return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, MessageResponse{Message: outcome.String()})
	}
}
