package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"golang.org/x/oauth2"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"ftask/internal/config"
	"ftask/internal/service"
)

const (
	// tasksCollection holds one document per task.
	tasksCollection = "tasks"

	// listPageSize is the Firestore page size for fetch-all.
	listPageSize = 300
)

// Store implements service.Store over the Firestore REST API.
type Store struct {
	docs   *firestore.ProjectsDatabasesDocumentsService
	parent string
}

// NewStore creates a task store client for the configured project,
// authenticated with the given session token source.
func NewStore(ctx context.Context, cfg *config.Config, ts oauth2.TokenSource) (*Store, error) {
	svc, err := firestore.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore service: %w", err)
	}
	return &Store{
		docs:   svc.Projects.Databases.Documents,
		parent: documentsRoot(cfg.ProjectID),
	}, nil
}

// ListTasks implements service.Store. The complete collection is
// fetched; there is no incremental sync.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.Task
	err := s.docs.ListDocuments(s.parent, tasksCollection).
		PageSize(listPageSize).
		Pages(ctx, func(resp *firestore.ListDocumentsResponse) error {
			for _, doc := range resp.Documents {
				result = append(result, taskFromDoc(doc))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTask implements service.Store. The document ID is assigned by
// Firestore and returned with the created record.
func (s *Store) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	doc := &firestore.Document{Fields: map[string]firestore.Value{
		"title":       {StringValue: draft.Title},
		"description": {StringValue: draft.Description},
		"dueDate":     {StringValue: draft.DueDate.UTC().Format(time.RFC3339)},
		"priority":    {StringValue: string(draft.Priority)},
		// completed defaults to false; force-send so the field exists.
		"completed": {ForceSendFields: []string{"BooleanValue"}},
	}}

	created, err := s.docs.CreateDocument(s.parent, tasksCollection, doc).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return taskFromDoc(created), nil
}

// SetCompleted implements service.Store. Only the completed field is
// patched; the update fails if the document no longer exists.
func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	doc := &firestore.Document{Fields: map[string]firestore.Value{
		"completed": {BooleanValue: completed, ForceSendFields: []string{"BooleanValue"}},
	}}
	_, err := s.docs.Patch(s.taskName(id), doc).
		UpdateMaskFieldPaths("completed").
		CurrentDocumentExists(true).
		Context(ctx).Do()
	return wrapError(err)
}

// DeleteTask implements service.Store.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := s.docs.Delete(s.taskName(id)).Context(ctx).Do()
	return wrapError(err)
}

// taskName returns the full document name for a task ID.
func (s *Store) taskName(id string) string {
	return s.parent + "/" + tasksCollection + "/" + id
}

// documentsRoot returns the document root for the default database.
func documentsRoot(projectID string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents", projectID)
}

// taskFromDoc maps a Firestore document onto a Task. The due date is
// stored as an ISO-8601 string, as the mobile client wrote it; an
// unparsable or missing value yields the zero time, which sorts first.
func taskFromDoc(doc *firestore.Document) service.Task {
	t := service.Task{
		ID:       path.Base(doc.Name),
		Priority: service.PriorityLow,
	}
	for name, v := range doc.Fields {
		switch name {
		case "title":
			t.Title = v.StringValue
		case "description":
			t.Description = v.StringValue
		case "dueDate":
			if due, err := time.Parse(time.RFC3339, v.StringValue); err == nil {
				t.DueDate = due
			}
		case "priority":
			if p := service.Priority(v.StringValue); service.ValidPriority(p) {
				t.Priority = p
			}
		case "completed":
			t.Completed = v.BooleanValue
		}
	}
	return t
}

// wrapError maps Firestore API failures onto user-facing errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("session expired or revoked (run: ftask login)")
		case http.StatusNotFound:
			return service.ErrNotFound
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
