package tools

import (
	"context"
	"fmt"

	"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
	"github.com/BrunoKrugel/brevo-mcp/pkg/convert"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

const ContactsTool = "contacts"

// ContactsArgs are the arguments of the contacts tool
type ContactsArgs struct {
	ContactData       map[string]any `json:"contactData,omitempty" description:"Contact information for create/update, export request (customContactFilter, exportAttributes) for export"`
	ListData          map[string]any `json:"listData,omitempty" description:"List information for create_list: name and folderId"`
	Contacts          map[string]any `json:"contacts,omitempty" description:"Import request for bulk_import (jsonBody, fileBody or fileUrl, listIds, updateExistingContacts, emptyContactsAttributes) or batch for bulk_update (contacts)"`
	AttributeData     map[string]any `json:"attributeData,omitempty" description:"Attribute data for create_attribute/update_attribute (type, value, enumeration)"`
	Operation         string         `json:"operation" required:"true" enum:"get,create,update,delete,get_lists,create_list,get_attributes,add_to_list,remove_from_list,bulk_import,bulk_update,export,create_attribute,update_attribute" description:"Contact operation to perform" validate:"required"`
	Identifier        string         `json:"identifier,omitempty" description:"Contact email or ID (for get, update, delete and list membership operations)"`
	AttributeName     string         `json:"attributeName,omitempty" description:"Attribute name for attribute operations"`
	AttributeCategory string         `json:"attributeCategory,omitempty" default:"normal" enum:"normal,transactional,category,calculated,global" description:"Attribute category for attribute operations" validate:"omitempty,oneof=normal transactional category calculated global"`
	ListID            int64          `json:"listId,omitempty" description:"List ID for list operations"`
	Limit             int            `json:"limit,omitempty" default:"50" minimum:"1" maximum:"50" description:"Page size for get_lists" validate:"omitempty,min=1,max=50"`
	Offset            int            `json:"offset,omitempty" default:"0" minimum:"0" description:"Page offset for get_lists" validate:"omitempty,min=0"`
}

func contactsHandler(client Client) types.ToolHandler {
	return func(ctx context.Context, arguments map[string]any) (string, error) {
		var args ContactsArgs
		if err := convert.DecodeArguments(arguments, &args); err != nil {
			return "", err
		}
		return runContacts(ctx, client, &args)
	}
}

func runContacts(ctx context.Context, client Client, args *ContactsArgs) (string, error) {
	switch args.Operation {
	case "get":
		if err := args.requireIdentifier(); err != nil {
			return "", err
		}
		contact, err := client.GetContactInfo(ctx, args.Identifier)
		if err != nil {
			return "", err
		}
		return prettyJSON(contact)

	case "create":
		var req brevo.CreateContact
		if err := convert.DecodeArguments(args.ContactData, &req); err != nil {
			return "", err
		}
		created, err := client.CreateContact(ctx, &req)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Contact created with ID: %d", created.ID), nil

	case "update":
		if err := args.requireIdentifier(); err != nil {
			return "", err
		}
		var req brevo.UpdateContact
		if err := convert.DecodeArguments(args.ContactData, &req); err != nil {
			return "", err
		}
		if err := client.UpdateContact(ctx, args.Identifier, &req); err != nil {
			return "", err
		}
		return fmt.Sprintf("Contact %s updated successfully", args.Identifier), nil

	case "delete":
		if err := args.requireIdentifier(); err != nil {
			return "", err
		}
		if err := client.DeleteContact(ctx, args.Identifier); err != nil {
			return "", err
		}
		return fmt.Sprintf("Contact %s deleted successfully", args.Identifier), nil

	case "get_lists":
		limit := args.Limit
		if limit == 0 {
			limit = 50
		}
		lists, err := client.GetLists(ctx, limit, args.Offset)
		if err != nil {
			return "", err
		}
		return prettyJSON(lists)

	case "create_list":
		var req brevo.CreateList
		if err := convert.DecodeArguments(args.ListData, &req); err != nil {
			return "", err
		}
		created, err := client.CreateList(ctx, &req)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("List created with ID: %d", created.ID), nil

	case "get_attributes":
		attributes, err := client.GetAttributes(ctx)
		if err != nil {
			return "", err
		}
		return prettyJSON(attributes)

	case "add_to_list", "remove_from_list":
		if err := args.requireIdentifier(); err != nil {
			return "", err
		}
		if args.ListID == 0 {
			return "", types.NewError(types.CodeInvalidParams, "listId is required for %s", args.Operation)
		}

		emails := []string{args.Identifier}
		if args.Operation == "add_to_list" {
			result, err := client.AddContactToList(ctx, args.ListID, emails)
			if err != nil {
				return "", err
			}
			return prefixedJSON("Contact added to list: ", result)
		}

		result, err := client.RemoveContactFromList(ctx, args.ListID, emails)
		if err != nil {
			return "", err
		}
		return prefixedJSON("Contact removed from list: ", result)

	case "bulk_import":
		req := brevo.RequestContactImport{UpdateExistingContacts: true}
		if err := convert.DecodeArguments(args.Contacts, &req); err != nil {
			return "", err
		}
		if len(req.JSONBody) == 0 && req.FileBody == "" && req.FileURL == "" {
			return "", types.NewError(types.CodeInvalidParams, "contacts must carry jsonBody, fileBody or fileUrl for bulk_import")
		}
		if args.ListID != 0 && len(req.ListIDs) == 0 {
			req.ListIDs = []int64{args.ListID}
		}
		result, err := client.ImportContacts(ctx, &req)
		if err != nil {
			return "", err
		}
		return prefixedJSON("Bulk import initiated: ", result)

	case "bulk_update":
		var req brevo.UpdateBatchContacts
		if err := convert.DecodeArguments(args.Contacts, &req); err != nil {
			return "", err
		}
		if err := client.UpdateBatchContacts(ctx, &req); err != nil {
			return "", err
		}
		return fmt.Sprintf("Batch update completed for %d contacts", len(req.Contacts)), nil

	case "export":
		var req brevo.RequestContactExport
		if err := convert.DecodeArguments(args.ContactData, &req); err != nil {
			return "", err
		}
		result, err := client.ExportContacts(ctx, &req)
		if err != nil {
			return "", err
		}
		return prefixedJSON("Contact export initiated: ", result)

	case "create_attribute":
		if err := args.requireAttributeName(); err != nil {
			return "", err
		}
		var req brevo.CreateAttribute
		if err := convert.DecodeArguments(args.AttributeData, &req); err != nil {
			return "", err
		}
		if err := client.CreateAttribute(ctx, args.attributeCategory(), args.AttributeName, &req); err != nil {
			return "", err
		}
		return fmt.Sprintf("Attribute '%s' created successfully", args.AttributeName), nil

	case "update_attribute":
		if err := args.requireAttributeName(); err != nil {
			return "", err
		}
		var req brevo.UpdateAttribute
		if err := convert.DecodeArguments(args.AttributeData, &req); err != nil {
			return "", err
		}
		if err := client.UpdateAttribute(ctx, args.attributeCategory(), args.AttributeName, &req); err != nil {
			return "", err
		}
		return fmt.Sprintf("Attribute '%s' updated successfully", args.AttributeName), nil

	default:
		return "", fmt.Errorf("Unknown contacts operation: %s", args.Operation)
	}
}

func (a *ContactsArgs) requireIdentifier() error {
	if a.Identifier == "" {
		return types.NewError(types.CodeInvalidParams, "identifier is required for %s", a.Operation)
	}
	return nil
}

func (a *ContactsArgs) requireAttributeName() error {
	if a.AttributeName == "" {
		return types.NewError(types.CodeInvalidParams, "attributeName is required for %s", a.Operation)
	}
	return nil
}

func (a *ContactsArgs) attributeCategory() string {
	if a.AttributeCategory == "" {
		return "normal"
	}
	return a.AttributeCategory
}

func prefixedJSON(prefix string, v any) (string, error) {
	out, err := prettyJSON(v)
	if err != nil {
		return "", err
	}
	return prefix + out, nil
}
