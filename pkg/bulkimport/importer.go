// Package bulkimport turns pasted text into a Brevo contact import.
package bulkimport

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
	"github.com/BrunoKrugel/brevo-mcp/pkg/contacts"
)

// ContactImporter submits an import request to the remote API
type ContactImporter interface {
	ImportContacts(ctx context.Context, req *brevo.RequestContactImport) (*brevo.CreatedProcessID, error)
}

// Options controls a single import run
type Options struct {
	ListID         int64
	UpdateExisting bool
	DryRun         bool
}

// State is the terminal state reached by a run
type State int

const (
	StateEmpty State = iota
	StateDryRun
	StateSubmitted
)

// Outcome is the result of a run that did not fail
type Outcome struct {
	ProcessID brevo.ProcessID
	Contacts  []contacts.Contact
	State     State
}

// ImportError is returned when the remote import call fails
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return "Bulk import failed: " + e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Importer parses text and submits the contacts it finds
type Importer struct {
	client ContactImporter
}

// NewImporter creates a new Importer
func NewImporter(client ContactImporter) *Importer {
	return &Importer{client: client}
}

// Run parses text and, unless the batch is empty or opts.DryRun is set, submits it.
// Failures of the remote call are returned as *ImportError.
func (i *Importer) Run(ctx context.Context, text string, opts Options) (*Outcome, error) {
	batch := contacts.ParseText(text)

	logger := log.WithFields(log.Fields{
		"contacts": len(batch),
		"dry_run":  opts.DryRun,
		"list_id":  opts.ListID,
	})

	if len(batch) == 0 {
		logger.Info("[Import] no contacts found")
		return &Outcome{State: StateEmpty, Contacts: batch}, nil
	}

	if opts.DryRun {
		logger.Info("[Import] dry run")
		return &Outcome{State: StateDryRun, Contacts: batch}, nil
	}

	req := NewRequest(batch, opts)

	res, err := i.client.ImportContacts(ctx, req)
	if err != nil {
		logger.WithError(err).Error("[Import] import failed")
		return nil, &ImportError{Err: err}
	}

	logger.WithField("process_id", res.ProcessID).Info("[Import] import started")

	return &Outcome{
		State:     StateSubmitted,
		Contacts:  batch,
		ProcessID: res.ProcessID,
	}, nil
}

// NewRequest builds the import payload for a batch
func NewRequest(batch []contacts.Contact, opts Options) *brevo.RequestContactImport {
	req := &brevo.RequestContactImport{
		JSONBody:               make([]brevo.ImportContact, 0, len(batch)),
		UpdateExistingContacts: opts.UpdateExisting,
	}

	for _, c := range batch {
		req.JSONBody = append(req.JSONBody, brevo.ImportContact{
			Email:      c.Email,
			Attributes: attributeMap(c.Attributes),
		})
	}

	if opts.ListID != 0 {
		req.ListIDs = []int64{opts.ListID}
	}

	return req
}

func attributeMap(a *contacts.Attributes) map[string]any {
	if a.IsEmpty() {
		return nil
	}

	m := make(map[string]any, 4)
	if a.FirstName != "" {
		m["FIRSTNAME"] = a.FirstName
	}
	if a.LastName != "" {
		m["LASTNAME"] = a.LastName
	}
	if a.SMS != "" {
		m["SMS"] = a.SMS
	}
	if a.Company != "" {
		m["COMPANY"] = a.Company
	}
	return m
}

// String renders the outcome as the text returned to the caller
func (o *Outcome) String() string {
	switch o.State {
	case StateDryRun:
		preview, err := sonic.ConfigDefault.MarshalIndent(o.Contacts, "", "  ")
		if err != nil {
			preview = fmt.Appendf(nil, "%+v", o.Contacts)
		}
		return fmt.Sprintf("DRY RUN: Would import %d contacts:\n%s", len(o.Contacts), preview)
	case StateSubmitted:
		return fmt.Sprintf("Bulk import initiated successfully! Process ID: %s\nImported %d contacts.", o.ProcessID, len(o.Contacts))
	default:
		return "No valid contacts found in the provided text."
	}
}
