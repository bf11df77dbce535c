// Package tools defines the Brevo tools, resources and REST routes served by brevo-mcp.
package tools

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
	"github.com/BrunoKrugel/brevo-mcp/pkg/bulkimport"
	"github.com/BrunoKrugel/brevo-mcp/pkg/convert"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

// Registrar is implemented by the MCP server
type Registrar interface {
	RegisterTool(tool types.Tool, handler types.ToolHandler)
	RegisterResource(resource types.Resource, handler types.ResourceHandler)
}

// Client is the part of the Brevo API used by the tools
type Client interface {
	bulkimport.ContactImporter
	GetContactInfo(ctx context.Context, identifier string) (map[string]any, error)
	CreateContact(ctx context.Context, req *brevo.CreateContact) (*brevo.CreatedID, error)
	UpdateContact(ctx context.Context, identifier string, req *brevo.UpdateContact) error
	DeleteContact(ctx context.Context, identifier string) error
	GetLists(ctx context.Context, limit, offset int) (map[string]any, error)
	CreateList(ctx context.Context, req *brevo.CreateList) (*brevo.CreatedID, error)
	GetAttributes(ctx context.Context) (map[string]any, error)
	AddContactToList(ctx context.Context, listID int64, emails []string) (map[string]any, error)
	RemoveContactFromList(ctx context.Context, listID int64, emails []string) (map[string]any, error)
	ExportContacts(ctx context.Context, req *brevo.RequestContactExport) (*brevo.CreatedProcessID, error)
	CreateAttribute(ctx context.Context, category, name string, req *brevo.CreateAttribute) error
	UpdateAttribute(ctx context.Context, category, name string, req *brevo.UpdateAttribute) error
	UpdateBatchContacts(ctx context.Context, req *brevo.UpdateBatchContacts) error
	GetAccount(ctx context.Context) (map[string]any, error)
}

// Register adds every tool and resource to r
func Register(r Registrar, client Client) error {
	importer := bulkimport.NewImporter(client)

	tools := []struct {
		args        any
		handler     types.ToolHandler
		name        string
		description string
	}{
		{
			name:        BulkContactImportTool,
			description: "Import contacts from pasted text (CSV rows, email signatures, free text). Extracts email, name, phone and company from each line.",
			args:        BulkImportArgs{},
			handler:     bulkImportHandler(importer),
		},
		{
			name:        ContactsTool,
			description: "Contact management: get, create, update, delete, import, export and batch update contacts, manage lists and attributes",
			args:        ContactsArgs{},
			handler:     contactsHandler(client),
		},
		{
			name:        AccountTool,
			description: "Account information for the configured API key",
			args:        AccountArgs{},
			handler:     accountHandler(client),
		},
	}

	for _, def := range tools {
		tool, err := convert.ToolFromArgs(def.name, def.description, def.args)
		if err != nil {
			return fmt.Errorf("failed to build %s tool: %w", def.name, err)
		}
		r.RegisterTool(tool, def.handler)
	}

	registerResources(r, client)
	return nil
}

// prettyJSON renders v as 2-space indented JSON
func prettyJSON(v any) (string, error) {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(out), nil
}
