package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

type fakeClient struct {
	err        error
	updated    map[string]*brevo.UpdateContact
	listAdds   map[int64][]string
	imports    []*brevo.RequestContactImport
	created    []*brevo.CreateContact
	deleted    []string
	lists      []*brevo.CreateList
	listCalls  [][2]int
	batches    []*brevo.UpdateBatchContacts
	exports    []*brevo.RequestContactExport
	attributes []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		updated:  make(map[string]*brevo.UpdateContact),
		listAdds: make(map[int64][]string),
	}
}

func (f *fakeClient) ImportContacts(_ context.Context, req *brevo.RequestContactImport) (*brevo.CreatedProcessID, error) {
	f.imports = append(f.imports, req)
	if f.err != nil {
		return nil, f.err
	}
	return &brevo.CreatedProcessID{ProcessID: "78"}, nil
}

func (f *fakeClient) GetContactInfo(_ context.Context, identifier string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"email": identifier, "id": 7}, nil
}

func (f *fakeClient) CreateContact(_ context.Context, req *brevo.CreateContact) (*brevo.CreatedID, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &brevo.CreatedID{ID: 42}, nil
}

func (f *fakeClient) UpdateContact(_ context.Context, identifier string, req *brevo.UpdateContact) error {
	if f.err != nil {
		return f.err
	}
	f.updated[identifier] = req
	return nil
}

func (f *fakeClient) DeleteContact(_ context.Context, identifier string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, identifier)
	return nil
}

func (f *fakeClient) GetLists(_ context.Context, limit, offset int) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.listCalls = append(f.listCalls, [2]int{limit, offset})
	return map[string]any{"count": 1, "lists": []any{map[string]any{"id": 2, "name": "Newsletter"}}}, nil
}

func (f *fakeClient) CreateList(_ context.Context, req *brevo.CreateList) (*brevo.CreatedID, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lists = append(f.lists, req)
	return &brevo.CreatedID{ID: 9}, nil
}

func (f *fakeClient) GetAttributes(_ context.Context) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"attributes": []any{map[string]any{"name": "FIRSTNAME"}}}, nil
}

func (f *fakeClient) AddContactToList(_ context.Context, listID int64, emails []string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.listAdds[listID] = append(f.listAdds[listID], emails...)
	return map[string]any{"contacts": map[string]any{"success": emails}}, nil
}

func (f *fakeClient) RemoveContactFromList(_ context.Context, _ int64, emails []string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"contacts": map[string]any{"success": emails}}, nil
}

func (f *fakeClient) ExportContacts(_ context.Context, req *brevo.RequestContactExport) (*brevo.CreatedProcessID, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.exports = append(f.exports, req)
	return &brevo.CreatedProcessID{ProcessID: "91"}, nil
}

func (f *fakeClient) CreateAttribute(_ context.Context, category, name string, _ *brevo.CreateAttribute) error {
	if f.err != nil {
		return f.err
	}
	f.attributes = append(f.attributes, category+"/"+name)
	return nil
}

func (f *fakeClient) UpdateAttribute(_ context.Context, category, name string, _ *brevo.UpdateAttribute) error {
	if f.err != nil {
		return f.err
	}
	f.attributes = append(f.attributes, category+"/"+name)
	return nil
}

func (f *fakeClient) UpdateBatchContacts(_ context.Context, req *brevo.UpdateBatchContacts) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, req)
	return nil
}

func (f *fakeClient) GetAccount(_ context.Context) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"email": "owner@example.com", "companyName": "Acme"}, nil
}

type fakeRegistrar struct {
	tools     map[string]types.ToolHandler
	resources map[string]types.ResourceHandler
	toolList  []types.Tool
	resList   []types.Resource
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{
		tools:     make(map[string]types.ToolHandler),
		resources: make(map[string]types.ResourceHandler),
	}
}

func (r *fakeRegistrar) RegisterTool(tool types.Tool, handler types.ToolHandler) {
	r.toolList = append(r.toolList, tool)
	r.tools[tool.Name] = handler
}

func (r *fakeRegistrar) RegisterResource(resource types.Resource, handler types.ResourceHandler) {
	r.resList = append(r.resList, resource)
	r.resources[resource.URI] = handler
}

func setup(t *testing.T) (*fakeRegistrar, *fakeClient) {
	t.Helper()

	registrar := newFakeRegistrar()
	client := newFakeClient()
	require.NoError(t, Register(registrar, client))
	return registrar, client
}

func TestRegister(t *testing.T) {
	t.Run("Should register every tool in order", func(t *testing.T) {
		registrar, _ := setup(t)

		require.Len(t, registrar.toolList, 3)
		assert.Equal(t, BulkContactImportTool, registrar.toolList[0].Name)
		assert.Equal(t, ContactsTool, registrar.toolList[1].Name)
		assert.Equal(t, AccountTool, registrar.toolList[2].Name)

		for _, tool := range registrar.toolList {
			assert.NotEmpty(t, tool.Description)
			schema, ok := tool.InputSchema.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "object", schema["type"])
		}
	})

	t.Run("Should describe the bulk import arguments", func(t *testing.T) {
		registrar, _ := setup(t)

		schema := registrar.toolList[0].InputSchema.(map[string]any)
		properties := schema["properties"].(map[string]any)
		assert.Contains(t, properties, "text")
		assert.Contains(t, properties, "listId")
		assert.Contains(t, properties, "updateExisting")
		assert.Contains(t, properties, "dryRun")
		assert.Equal(t, []any{"text"}, schema["required"])
	})

	t.Run("Should register every resource", func(t *testing.T) {
		registrar, _ := setup(t)

		uris := make([]string, 0, len(registrar.resList))
		for _, res := range registrar.resList {
			uris = append(uris, res.URI)
			assert.Equal(t, "application/json", res.MimeType)
		}
		assert.ElementsMatch(t, []string{
			ContactSchemaURI,
			SampleContactsURI,
			BulkImportSchemaURI,
			CurrentAttributesURI,
			CurrentListsURI,
			BulkImportHelperURI,
		}, uris)
	})
}

func TestBulkImportTool(t *testing.T) {
	t.Run("Should preview contacts on dry run", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{
			"text":   "Jane Smith <jane@example.com>",
			"dryRun": true,
		})

		require.NoError(t, err)
		assert.Contains(t, text, "DRY RUN: Would import 1 contacts:")
		assert.Contains(t, text, `"FIRSTNAME": "Jane"`)
		assert.Empty(t, client.imports)
	})

	t.Run("Should default updateExisting to true", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{
			"text":   "jane@example.com",
			"listId": float64(5),
		})

		require.NoError(t, err)
		assert.Equal(t, "Bulk import initiated successfully! Process ID: 78\nImported 1 contacts.", text)
		require.Len(t, client.imports, 1)
		assert.True(t, client.imports[0].UpdateExistingContacts)
		assert.Equal(t, []int64{5}, client.imports[0].ListIDs)
	})

	t.Run("Should honor updateExisting false", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{
			"text":           "jane@example.com",
			"updateExisting": false,
		})

		require.NoError(t, err)
		require.Len(t, client.imports, 1)
		assert.False(t, client.imports[0].UpdateExistingContacts)
		assert.Nil(t, client.imports[0].ListIDs)
	})

	t.Run("Should report text without contacts", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{"text": "nobody here"})

		require.NoError(t, err)
		assert.Equal(t, "No valid contacts found in the provided text.", text)
		assert.Empty(t, client.imports)
	})

	t.Run("Should wrap import failures", func(t *testing.T) {
		registrar, client := setup(t)
		client.err = errors.New("Invalid API key")

		_, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{"text": "jane@example.com"})

		require.Error(t, err)
		assert.Equal(t, "Bulk import failed: Invalid API key", err.Error())
	})

	t.Run("Should reject arguments of the wrong type", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := registrar.tools[BulkContactImportTool](context.Background(), map[string]any{"text": 12})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)
	})
}

func TestContactsTool(t *testing.T) {
	call := func(t *testing.T, registrar *fakeRegistrar, arguments map[string]any) (string, error) {
		t.Helper()
		return registrar.tools[ContactsTool](context.Background(), arguments)
	}

	t.Run("Should return a contact as indented JSON", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := call(t, registrar, map[string]any{"operation": "get", "identifier": "jane@example.com"})

		require.NoError(t, err)
		assert.Contains(t, text, "\n  \"email\": \"jane@example.com\"")
	})

	t.Run("Should require an identifier for get", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "get"})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)
		assert.Equal(t, "identifier is required for get", mcpErr.Message)
	})

	t.Run("Should create a contact from contactData", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation": "create",
			"contactData": map[string]any{
				"email":      "new@example.com",
				"attributes": map[string]any{"FIRSTNAME": "New"},
				"listIds":    []any{float64(3)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Contact created with ID: 42", text)
		require.Len(t, client.created, 1)
		assert.Equal(t, "new@example.com", client.created[0].Email)
		assert.Equal(t, []int64{3}, client.created[0].ListIDs)
		assert.Equal(t, "New", client.created[0].Attributes["FIRSTNAME"])
	})

	t.Run("Should update and delete contacts", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation":   "update",
			"identifier":  "jane@example.com",
			"contactData": map[string]any{"attributes": map[string]any{"LASTNAME": "Doe"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Contact jane@example.com updated successfully", text)
		require.Contains(t, client.updated, "jane@example.com")
		assert.Equal(t, "Doe", client.updated["jane@example.com"].Attributes["LASTNAME"])

		text, err = call(t, registrar, map[string]any{"operation": "delete", "identifier": "jane@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Contact jane@example.com deleted successfully", text)
		assert.Equal(t, []string{"jane@example.com"}, client.deleted)
	})

	t.Run("Should page lists with defaults", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "get_lists"})
		require.NoError(t, err)

		_, err = call(t, registrar, map[string]any{"operation": "get_lists", "limit": float64(10), "offset": float64(20)})
		require.NoError(t, err)

		assert.Equal(t, [][2]int{{50, 0}, {10, 20}}, client.listCalls)
	})

	t.Run("Should reject a page size over the limit", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "get_lists", "limit": float64(500)})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)
		assert.Empty(t, client.listCalls)
	})

	t.Run("Should create a list", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation": "create_list",
			"listData":  map[string]any{"name": "VIP", "folderId": float64(1)},
		})

		require.NoError(t, err)
		assert.Equal(t, "List created with ID: 9", text)
		require.Len(t, client.lists, 1)
		assert.Equal(t, "VIP", client.lists[0].Name)
	})

	t.Run("Should validate list data", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "create_list", "listData": map[string]any{"name": "VIP"}})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Contains(t, mcpErr.Message, "folderId is required")
		assert.Empty(t, client.lists)
	})

	t.Run("Should add a contact to a list", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation":  "add_to_list",
			"identifier": "jane@example.com",
			"listId":     float64(4),
		})

		require.NoError(t, err)
		assert.Contains(t, text, "Contact added to list: ")
		assert.Equal(t, []string{"jane@example.com"}, client.listAdds[4])
	})

	t.Run("Should require a list id for membership changes", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "remove_from_list", "identifier": "jane@example.com"})

		require.Error(t, err)
		assert.Equal(t, "listId is required for remove_from_list", err.Error())
	})

	t.Run("Should remove a contact from a list", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation":  "remove_from_list",
			"identifier": "jane@example.com",
			"listId":     float64(4),
		})

		require.NoError(t, err)
		assert.Contains(t, text, "Contact removed from list: ")
	})

	t.Run("Should import structured contacts with defaults", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation": "bulk_import",
			"listId":    float64(6),
			"contacts": map[string]any{
				"jsonBody": []any{
					map[string]any{"email": "a@example.com", "attributes": map[string]any{"FIRSTNAME": "A"}},
				},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, text, "Bulk import initiated: ")
		assert.Contains(t, text, `"processId": "78"`)
		require.Len(t, client.imports, 1)
		assert.Equal(t, []int64{6}, client.imports[0].ListIDs)
		assert.True(t, client.imports[0].UpdateExistingContacts)
		assert.Equal(t, "a@example.com", client.imports[0].JSONBody[0].Email)
	})

	t.Run("Should pass the caller's import options through", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{
			"operation": "bulk_import",
			"listId":    float64(6),
			"contacts": map[string]any{
				"fileBody":                "EMAIL;FIRSTNAME\na@example.com;A",
				"listIds":                 []any{float64(1), float64(2)},
				"updateExistingContacts":  false,
				"emptyContactsAttributes": true,
			},
		})

		require.NoError(t, err)
		require.Len(t, client.imports, 1)
		req := client.imports[0]
		assert.Equal(t, []int64{1, 2}, req.ListIDs)
		assert.False(t, req.UpdateExistingContacts)
		assert.True(t, req.EmptyContactsAttributes)
		assert.Equal(t, "EMAIL;FIRSTNAME\na@example.com;A", req.FileBody)
	})

	t.Run("Should require contacts for bulk_import", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "bulk_import", "contacts": map[string]any{}})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)
		assert.Empty(t, client.imports)
	})

	t.Run("Should batch update contacts", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation": "bulk_update",
			"contacts": map[string]any{
				"contacts": []any{
					map[string]any{"email": "a@example.com", "attributes": map[string]any{"COMPANY": "Acme"}},
					map[string]any{"id": float64(12), "listIds": []any{float64(3)}},
				},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Batch update completed for 2 contacts", text)
		require.Len(t, client.batches, 1)
		assert.Equal(t, "Acme", client.batches[0].Contacts[0].Attributes["COMPANY"])
		assert.Equal(t, int64(12), client.batches[0].Contacts[1].ID)
	})

	t.Run("Should reject a batch entry without an identifier", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{
			"operation": "bulk_update",
			"contacts": map[string]any{
				"contacts": []any{map[string]any{"attributes": map[string]any{"COMPANY": "Acme"}}},
			},
		})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)
		assert.Empty(t, client.batches)
	})

	t.Run("Should start an export", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation": "export",
			"contactData": map[string]any{
				"customContactFilter": map[string]any{"actionForContacts": "allContacts"},
				"exportAttributes":    []any{"EMAIL", "FIRSTNAME"},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, text, "Contact export initiated: ")
		require.Len(t, client.exports, 1)
		assert.Equal(t, []string{"EMAIL", "FIRSTNAME"}, client.exports[0].ExportAttributes)
	})

	t.Run("Should require a filter for export", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "export"})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Contains(t, mcpErr.Message, "customContactFilter is required")
		assert.Empty(t, client.exports)
	})

	t.Run("Should create an attribute in the normal category by default", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation":     "create_attribute",
			"attributeName": "COMPANY",
			"attributeData": map[string]any{"type": "text"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Attribute 'COMPANY' created successfully", text)
		require.Len(t, client.attributes, 1)
		assert.Equal(t, "normal/COMPANY", client.attributes[0])
	})

	t.Run("Should update an attribute in the given category", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := call(t, registrar, map[string]any{
			"operation":         "update_attribute",
			"attributeName":     "PLAN",
			"attributeCategory": "category",
			"attributeData": map[string]any{
				"enumeration": []any{map[string]any{"label": "Pro", "value": float64(1)}},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Attribute 'PLAN' updated successfully", text)
		assert.Equal(t, []string{"category/PLAN"}, client.attributes)
	})

	t.Run("Should validate attribute operations", func(t *testing.T) {
		registrar, client := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "create_attribute"})
		require.Error(t, err)
		assert.Equal(t, "attributeName is required for create_attribute", err.Error())

		_, err = call(t, registrar, map[string]any{
			"operation":     "create_attribute",
			"attributeName": "SCORE",
			"attributeData": map[string]any{"type": "money"},
		})
		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)

		_, err = call(t, registrar, map[string]any{
			"operation":         "update_attribute",
			"attributeName":     "SCORE",
			"attributeCategory": "custom",
		})
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInvalidParams, mcpErr.Code)

		assert.Empty(t, client.attributes)
	})

	t.Run("Should return attributes", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := call(t, registrar, map[string]any{"operation": "get_attributes"})

		require.NoError(t, err)
		assert.Contains(t, text, "FIRSTNAME")
	})

	t.Run("Should reject unknown operations", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := call(t, registrar, map[string]any{"operation": "merge"})

		require.Error(t, err)
		assert.Equal(t, "Unknown contacts operation: merge", err.Error())
	})

	t.Run("Should require an operation", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := call(t, registrar, map[string]any{})

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Contains(t, mcpErr.Message, "operation is required")
	})

	t.Run("Should pass API errors through", func(t *testing.T) {
		registrar, client := setup(t)
		client.err = &brevo.APIError{StatusCode: 404, Code: "document_not_found", Message: "Contact does not exist"}

		_, err := call(t, registrar, map[string]any{"operation": "get", "identifier": "missing@example.com"})

		require.Error(t, err)
		assert.True(t, brevo.IsNotFound(err))
		assert.Equal(t, "Contact does not exist", err.Error())
	})
}

func TestAccountTool(t *testing.T) {
	t.Run("Should return the account", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := registrar.tools[AccountTool](context.Background(), map[string]any{"operation": "get_account"})

		require.NoError(t, err)
		var account map[string]any
		require.NoError(t, sonic.UnmarshalString(text, &account))
		assert.Equal(t, "owner@example.com", account["email"])
	})

	t.Run("Should reject unknown operations", func(t *testing.T) {
		registrar, _ := setup(t)

		_, err := registrar.tools[AccountTool](context.Background(), map[string]any{"operation": "get_senders"})

		require.Error(t, err)
		assert.Equal(t, "Unknown account operation: get_senders", err.Error())
	})
}

func TestResources(t *testing.T) {
	t.Run("Should serve the contact schema and samples", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := registrar.resources[ContactSchemaURI](context.Background())
		require.NoError(t, err)
		var schema map[string]any
		require.NoError(t, sonic.UnmarshalString(text, &schema))
		assert.Equal(t, "user@example.com", schema["email"])
		assert.Contains(t, schema["attributes"], "COMPANY")

		text, err = registrar.resources[SampleContactsURI](context.Background())
		require.NoError(t, err)
		var samples []map[string]any
		require.NoError(t, sonic.UnmarshalString(text, &samples))
		require.Len(t, samples, 5)
		assert.Equal(t, "alice.johnson@example.com", samples[0]["email"])
	})

	t.Run("Should serve the static import schema", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := registrar.resources[BulkImportSchemaURI](context.Background())

		require.NoError(t, err)
		var schema map[string]any
		require.NoError(t, sonic.UnmarshalString(text, &schema))
		assert.Equal(t, "bulk_import", schema["type"])
		assert.Equal(t, true, schema["updateExistingContacts"])
	})

	t.Run("Should serve the import helper", func(t *testing.T) {
		registrar, _ := setup(t)

		text, err := registrar.resources[BulkImportHelperURI](context.Background())

		require.NoError(t, err)
		var helper map[string]any
		require.NoError(t, sonic.UnmarshalString(text, &helper))
		assert.Contains(t, helper["example"], "John Doe <john@example.com>")
	})

	t.Run("Should fetch live lists", func(t *testing.T) {
		registrar, client := setup(t)

		text, err := registrar.resources[CurrentListsURI](context.Background())

		require.NoError(t, err)
		assert.Contains(t, text, "Newsletter")
		assert.Equal(t, [][2]int{{50, 0}}, client.listCalls)
	})

	t.Run("Should report live fetch failures", func(t *testing.T) {
		registrar, client := setup(t)
		client.err = brevo.ErrMissingAPIKey

		_, err := registrar.resources[CurrentAttributesURI](context.Background())

		var mcpErr *types.MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, types.CodeInternalError, mcpErr.Code)
		assert.Equal(t, "Failed to fetch attributes: BREVO_API_KEY is not configured", mcpErr.Message)
	})
}
