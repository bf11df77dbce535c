package tools

import (
	"context"

	"github.com/BrunoKrugel/brevo-mcp/pkg/bulkimport"
	"github.com/BrunoKrugel/brevo-mcp/pkg/convert"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

const BulkContactImportTool = "bulk_contact_import"

// BulkImportArgs are the arguments of the bulk_contact_import tool and the REST import route
type BulkImportArgs struct {
	UpdateExisting *bool  `json:"updateExisting,omitempty" default:"true" description:"Update contacts that already exist"`
	Text           string `json:"text" required:"true" description:"Raw text containing contact information (CSV, emails, names, etc.)"`
	ListID         int64  `json:"listId,omitempty" description:"Optional list ID to add the imported contacts to"`
	DryRun         bool   `json:"dryRun,omitempty" default:"false" description:"Preview the extracted contacts without importing them"`
}

// Options converts the arguments, applying the defaults
func (a *BulkImportArgs) Options() bulkimport.Options {
	opts := bulkimport.Options{
		ListID:         a.ListID,
		UpdateExisting: true,
		DryRun:         a.DryRun,
	}
	if a.UpdateExisting != nil {
		opts.UpdateExisting = *a.UpdateExisting
	}
	return opts
}

func bulkImportHandler(importer *bulkimport.Importer) types.ToolHandler {
	return func(ctx context.Context, arguments map[string]any) (string, error) {
		var args BulkImportArgs
		if err := convert.DecodeArguments(arguments, &args); err != nil {
			return "", err
		}

		outcome, err := importer.Run(ctx, args.Text, args.Options())
		if err != nil {
			return "", err
		}
		return outcome.String(), nil
	}
}
