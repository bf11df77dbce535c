package tools

import (
	"context"

	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

const (
	ContactSchemaURI     = "brevo://schemas/contact"
	SampleContactsURI    = "brevo://samples/contacts"
	BulkImportSchemaURI  = "brevo://schemas/bulk-import"
	CurrentAttributesURI = "brevo://current/attributes"
	CurrentListsURI      = "brevo://current/lists"
	BulkImportHelperURI  = "brevo://tools/bulk-contact-import"
)

const contactSchema = `{
  "email": "user@example.com",
  "attributes": {
    "FIRSTNAME": "John",
    "LASTNAME": "Doe",
    "SMS": "+1234567890",
    "COMPANY": "Acme Corp",
    "JOB_TITLE": "Developer",
    "LINKEDIN": "https://linkedin.com/in/johndoe",
    "WHATSAPP": "+1234567890",
    "COUNTRY": "USA",
    "TAGS": "premium,developer"
  },
  "listIds": [
    1,
    2
  ],
  "emailBlacklisted": false,
  "smsBlacklisted": false,
  "updateEnabled": true
}`

const sampleContacts = `[
  {
    "email": "alice.johnson@example.com",
    "attributes": {
      "FIRSTNAME": "Alice",
      "LASTNAME": "Johnson",
      "COMPANY": "TechCorp",
      "JOB_TITLE": "Marketing Manager",
      "COUNTRY": "USA",
      "SMS": "+15551234567"
    }
  },
  {
    "email": "bob.smith@example.com",
    "attributes": {
      "FIRSTNAME": "Bob",
      "LASTNAME": "Smith",
      "COMPANY": "StartupXYZ",
      "JOB_TITLE": "CTO",
      "COUNTRY": "Canada",
      "LINKEDIN": "https://linkedin.com/in/bobsmith"
    }
  },
  {
    "email": "carol.davis@example.com",
    "attributes": {
      "FIRSTNAME": "Carol",
      "LASTNAME": "Davis",
      "COMPANY": "Enterprise Inc",
      "JOB_TITLE": "Sales Director",
      "COUNTRY": "UK",
      "SMS": "+447123456789"
    }
  },
  {
    "email": "david.wilson@example.com",
    "attributes": {
      "FIRSTNAME": "David",
      "LASTNAME": "Wilson",
      "COMPANY": "Innovation Labs",
      "JOB_TITLE": "Product Manager",
      "COUNTRY": "Germany",
      "WHATSAPP": "+491234567890"
    }
  },
  {
    "email": "emma.brown@example.com",
    "attributes": {
      "FIRSTNAME": "Emma",
      "LASTNAME": "Brown",
      "COMPANY": "Creative Agency",
      "JOB_TITLE": "Designer",
      "COUNTRY": "Australia",
      "TAGS": "premium,creative"
    }
  }
]`

const bulkImportSchema = `{
  "type": "bulk_import",
  "jsonBody": [
    {
      "email": "user1@example.com",
      "attributes": {
        "FIRSTNAME": "John",
        "LASTNAME": "Doe"
      }
    }
  ],
  "listIds": [
    1
  ],
  "updateExistingContacts": true,
  "emptyContactsAttributes": false
}`

const bulkImportHelper = `{
  "instructions": "Use this tool to intelligently import contacts from pasted text",
  "process": [
    "1. Analyze the provided text to extract contact information",
    "2. Map to existing Brevo attributes",
    "3. Format for bulk import",
    "4. Preview with dryRun or execute the import operation"
  ],
  "parameters": {
    "text": "Paste your contact data here (CSV, text, emails, etc.)",
    "listId": "Optional: List ID to add contacts to",
    "updateExisting": "true/false - whether to update existing contacts",
    "dryRun": "true/false - preview the extracted contacts without importing"
  },
  "example": "John Doe <john@example.com>, Jane Smith (jane@example.com), Bob Wilson bob@test.com +1234567890"
}`

const jsonMimeType = "application/json"

func registerResources(r Registrar, client Client) {
	r.RegisterResource(types.Resource{
		URI:         ContactSchemaURI,
		Name:        "Contact Schema",
		Description: "Complete contact model with all available attributes",
		MimeType:    jsonMimeType,
	}, staticResource(contactSchema))

	r.RegisterResource(types.Resource{
		URI:         SampleContactsURI,
		Name:        "Sample Contacts",
		Description: "5 sample contacts with realistic data",
		MimeType:    jsonMimeType,
	}, staticResource(sampleContacts))

	r.RegisterResource(types.Resource{
		URI:         BulkImportSchemaURI,
		Name:        "Bulk Import Schema",
		Description: "Schema for bulk contact import operations",
		MimeType:    jsonMimeType,
	}, staticResource(bulkImportSchema))

	r.RegisterResource(types.Resource{
		URI:         CurrentAttributesURI,
		Name:        "Current Attributes",
		Description: "Live list of all contact attributes in your account",
		MimeType:    jsonMimeType,
	}, func(ctx context.Context) (string, error) {
		attributes, err := client.GetAttributes(ctx)
		if err != nil {
			return "", types.NewError(types.CodeInternalError, "Failed to fetch attributes: %v", err)
		}
		return prettyJSON(attributes)
	})

	r.RegisterResource(types.Resource{
		URI:         CurrentListsURI,
		Name:        "Current Lists",
		Description: "Live list of all contact lists in your account",
		MimeType:    jsonMimeType,
	}, func(ctx context.Context) (string, error) {
		lists, err := client.GetLists(ctx, 50, 0)
		if err != nil {
			return "", types.NewError(types.CodeInternalError, "Failed to fetch lists: %v", err)
		}
		return prettyJSON(lists)
	})

	r.RegisterResource(types.Resource{
		URI:         BulkImportHelperURI,
		Name:        "Bulk Contact Import Helper",
		Description: "Intelligent helper for importing contacts from pasted text",
		MimeType:    jsonMimeType,
	}, staticResource(bulkImportHelper))
}

func staticResource(text string) types.ResourceHandler {
	return func(context.Context) (string, error) {
		return text, nil
	}
}
