package brevo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ImportContact is one entry of an import jsonBody
type ImportContact struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	Email      string         `json:"email"`
}

// RequestContactImport is the body of POST /contacts/import. One of JSONBody, FileBody or FileURL carries the contacts.
type RequestContactImport struct {
	NotifyURL               string          `json:"notifyUrl,omitempty"`
	FileURL                 string          `json:"fileUrl,omitempty"`
	FileBody                string          `json:"fileBody,omitempty"`
	JSONBody                []ImportContact `json:"jsonBody,omitempty"`
	ListIDs                 []int64         `json:"listIds,omitempty"`
	UpdateExistingContacts  bool            `json:"updateExistingContacts"`
	EmptyContactsAttributes bool            `json:"emptyContactsAttributes"`
}

// ProcessID identifies an asynchronous import. The API sends a number; strings are accepted too.
type ProcessID string

// UnmarshalJSON accepts both numeric and string ids
func (p *ProcessID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	*p = ProcessID(raw)
	return nil
}

// CreatedProcessID is the answer to an import request
type CreatedProcessID struct {
	ProcessID ProcessID `json:"processId"`
}

// CreateContact is the body of POST /contacts
type CreateContact struct {
	Attributes       map[string]any `json:"attributes,omitempty"`
	EmailBlacklisted *bool          `json:"emailBlacklisted,omitempty"`
	SMSBlacklisted   *bool          `json:"smsBlacklisted,omitempty"`
	Email            string         `json:"email,omitempty"`
	ExtID            string         `json:"ext_id,omitempty"`
	ListIDs          []int64        `json:"listIds,omitempty"`
	UpdateEnabled    bool           `json:"updateEnabled,omitempty"`
}

// UpdateContact is the body of PUT /contacts/{identifier}
type UpdateContact struct {
	Attributes       map[string]any `json:"attributes,omitempty"`
	EmailBlacklisted *bool          `json:"emailBlacklisted,omitempty"`
	SMSBlacklisted   *bool          `json:"smsBlacklisted,omitempty"`
	ExtID            string         `json:"ext_id,omitempty"`
	ListIDs          []int64        `json:"listIds,omitempty"`
	UnlinkListIDs    []int64        `json:"unlinkListIds,omitempty"`
}

// CreateList is the body of POST /contacts/lists
type CreateList struct {
	Name     string `json:"name" validate:"required"`
	FolderID int64  `json:"folderId" validate:"required"`
}

// CreatedID is returned when a contact or list is created
type CreatedID struct {
	ID int64 `json:"id"`
}

// RequestContactExport is the body of POST /contacts/export
type RequestContactExport struct {
	CustomContactFilter map[string]any `json:"customContactFilter" validate:"required"`
	NotifyURL           string         `json:"notifyUrl,omitempty"`
	ExportAttributes    []string       `json:"exportAttributes,omitempty"`
}

// AttributeEnumeration is one option of a category attribute
type AttributeEnumeration struct {
	Label string `json:"label" validate:"required"`
	Value int64  `json:"value"`
}

// CreateAttribute is the body of POST /contacts/attributes/{category}/{name}
type CreateAttribute struct {
	IsRecurring *bool                  `json:"isRecurring,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Type        string                 `json:"type,omitempty" validate:"omitempty,oneof=text date float boolean id category"`
	Enumeration []AttributeEnumeration `json:"enumeration,omitempty" validate:"dive"`
}

// UpdateAttribute is the body of PUT /contacts/attributes/{category}/{name}
type UpdateAttribute struct {
	Value       string                 `json:"value,omitempty"`
	Enumeration []AttributeEnumeration `json:"enumeration,omitempty" validate:"dive"`
}

// UpdateBatchContact identifies one contact of a batch update by email, id or ext_id
type UpdateBatchContact struct {
	Attributes       map[string]any `json:"attributes,omitempty"`
	EmailBlacklisted *bool          `json:"emailBlacklisted,omitempty"`
	SMSBlacklisted   *bool          `json:"smsBlacklisted,omitempty"`
	Email            string         `json:"email,omitempty" validate:"required_without_all=ID ExtID"`
	ExtID            string         `json:"ext_id,omitempty"`
	ListIDs          []int64        `json:"listIds,omitempty"`
	UnlinkListIDs    []int64        `json:"unlinkListIds,omitempty"`
	ID               int64          `json:"id,omitempty"`
}

// UpdateBatchContacts is the body of POST /contacts/batch
type UpdateBatchContacts struct {
	Contacts []UpdateBatchContact `json:"contacts" validate:"required,min=1,dive"`
}

type listEmails struct {
	Emails []string `json:"emails"`
}

// ImportContacts starts an asynchronous contact import
func (c *Client) ImportContacts(ctx context.Context, req *RequestContactImport) (*CreatedProcessID, error) {
	var out CreatedProcessID
	if err := c.do(ctx, http.MethodPost, "/contacts/import", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContactInfo returns a contact by email, id or ext_id
func (c *Client) GetContactInfo(ctx context.Context, identifier string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, contactPath(identifier), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContact creates a contact
func (c *Client) CreateContact(ctx context.Context, req *CreateContact) (*CreatedID, error) {
	var out CreatedID
	if err := c.do(ctx, http.MethodPost, "/contacts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContact updates a contact
func (c *Client) UpdateContact(ctx context.Context, identifier string, req *UpdateContact) error {
	return c.do(ctx, http.MethodPut, contactPath(identifier), req, nil)
}

// DeleteContact deletes a contact
func (c *Client) DeleteContact(ctx context.Context, identifier string) error {
	return c.do(ctx, http.MethodDelete, contactPath(identifier), nil, nil)
}

// GetLists returns one page of contact lists
func (c *Client) GetLists(ctx context.Context, limit, offset int) (map[string]any, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/contacts/lists?"+query.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateList creates a contact list
func (c *Client) CreateList(ctx context.Context, req *CreateList) (*CreatedID, error) {
	var out CreatedID
	if err := c.do(ctx, http.MethodPost, "/contacts/lists", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAttributes returns every contact attribute defined on the account
func (c *Client) GetAttributes(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/contacts/attributes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddContactToList adds existing contacts to a list
func (c *Client) AddContactToList(ctx context.Context, listID int64, emails []string) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/contacts/lists/%d/contacts/add", listID)
	if err := c.do(ctx, http.MethodPost, path, &listEmails{Emails: emails}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveContactFromList removes contacts from a list
func (c *Client) RemoveContactFromList(ctx context.Context, listID int64, emails []string) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/contacts/lists/%d/contacts/remove", listID)
	if err := c.do(ctx, http.MethodPost, path, &listEmails{Emails: emails}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportContacts starts an asynchronous export of the contacts matching the filter
func (c *Client) ExportContacts(ctx context.Context, req *RequestContactExport) (*CreatedProcessID, error) {
	var out CreatedProcessID
	if err := c.do(ctx, http.MethodPost, "/contacts/export", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAttribute creates a contact attribute in category
func (c *Client) CreateAttribute(ctx context.Context, category, name string, req *CreateAttribute) error {
	return c.do(ctx, http.MethodPost, attributePath(category, name), req, nil)
}

// UpdateAttribute updates a contact attribute in category
func (c *Client) UpdateAttribute(ctx context.Context, category, name string, req *UpdateAttribute) error {
	return c.do(ctx, http.MethodPut, attributePath(category, name), req, nil)
}

// UpdateBatchContacts updates several contacts in one call
func (c *Client) UpdateBatchContacts(ctx context.Context, req *UpdateBatchContacts) error {
	return c.do(ctx, http.MethodPost, "/contacts/batch", req, nil)
}

func attributePath(category, name string) string {
	return "/contacts/attributes/" + url.PathEscape(category) + "/" + url.PathEscape(name)
}

func contactPath(identifier string) string {
	return "/contacts/" + url.PathEscape(identifier)
}
