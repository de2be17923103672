package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

// =========================================================================
// IN-MEMORY FAKES
// =========================================================================
//
// One fakeStore backs all three repository interfaces so threads, comments
// and users can reference each other. calls records every method invoked,
// and the *Err fields inject storage failures.

type storedComment struct {
	id       string
	threadID string
	owner    string
	content  string
	date     string
	deleted  bool
}

type fakeStore struct {
	mu       sync.Mutex
	threads  map[string]model.ThreadDetail
	comments map[string]*storedComment
	users    map[string]*model.User // keyed by username
	order    []string               // comment ids in insertion order
	nextID   int
	calls    []string

	addThreadErr  error
	getThreadErr  error
	listErr       error
	addCommentErr error
	deleteErr     error
	extraRows     []model.Payload
}

var (
	_ repository.ThreadRepository  = (*fakeStore)(nil)
	_ repository.CommentRepository = (*fakeStore)(nil)
	_ repository.UserRepository    = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		threads:  make(map[string]model.ThreadDetail),
		comments: make(map[string]*storedComment),
		users:    make(map[string]*model.User),
	}
}

func (f *fakeStore) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeStore) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%03d", prefix, f.nextID)
}

func (f *fakeStore) date() string {
	return fmt.Sprintf("2021-08-08T07:%02d:00.000Z", f.nextID)
}

// seedThread stores a thread directly, bypassing the service.
func (f *fakeStore) seedThread(id, title, username string) {
	f.threads[id] = model.ThreadDetail{
		ID: id, Title: title, Body: "sebuah body thread", Date: "2021-08-08T07:19:09.775Z", Username: username,
	}
}

// seedComment stores a comment directly and returns its id.
func (f *fakeStore) seedComment(threadID, owner, content string) string {
	id := f.id("comment")
	f.comments[id] = &storedComment{id: id, threadID: threadID, owner: owner, content: content, date: f.date()}
	f.order = append(f.order, id)
	return id
}

func (f *fakeStore) AddThread(_ context.Context, t *model.NewThread) (*model.AddedThread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddThread")
	if f.addThreadErr != nil {
		return nil, f.addThreadErr
	}
	id := f.id("thread")
	f.threads[id] = model.ThreadDetail{ID: id, Title: t.Title, Body: t.Body, Date: f.date(), Username: t.Owner}
	return &model.AddedThread{ID: id, Title: t.Title, Owner: t.Owner}, nil
}

func (f *fakeStore) GetThreadDetailByID(_ context.Context, id string) (*model.ThreadDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetThreadDetailByID")
	if f.getThreadErr != nil {
		return nil, f.getThreadErr
	}
	t, ok := f.threads[id]
	if !ok {
		return nil, apperror.NotFound(repository.MsgThreadNotFound)
	}
	return &t, nil
}

func (f *fakeStore) CheckThreadAvailability(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CheckThreadAvailability")
	if f.getThreadErr != nil {
		return f.getThreadErr
	}
	if _, ok := f.threads[id]; !ok {
		return apperror.NotFound(repository.MsgThreadNotFound)
	}
	return nil
}

func (f *fakeStore) AddComment(_ context.Context, c *model.NewComment) (*model.AddedComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddComment")
	if f.addCommentErr != nil {
		return nil, f.addCommentErr
	}
	id := f.id("comment")
	f.comments[id] = &storedComment{id: id, threadID: c.ThreadID, owner: c.Owner, content: c.Content, date: f.date()}
	f.order = append(f.order, id)
	return &model.AddedComment{ID: id, Content: c.Content, Owner: c.Owner}, nil
}

func (f *fakeStore) DeleteCommentByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteCommentByID")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	c, ok := f.comments[id]
	if !ok {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}
	c.deleted = true
	return nil
}

func (f *fakeStore) GetCommentsByThreadID(_ context.Context, threadID string) ([]model.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetCommentsByThreadID")
	if f.listErr != nil {
		return nil, f.listErr
	}
	rows := make([]model.Payload, 0)
	for _, id := range f.order {
		c := f.comments[id]
		if c.threadID != threadID {
			continue
		}
		rows = append(rows, model.Payload{
			"id":        c.id,
			"username":  c.owner,
			"date":      c.date,
			"content":   c.content,
			"is_delete": c.deleted,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i]["date"].(string) < rows[j]["date"].(string)
	})
	return append(rows, f.extraRows...), nil
}

func (f *fakeStore) VerifyCommentOwner(_ context.Context, id, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("VerifyCommentOwner")
	c, ok := f.comments[id]
	if !ok || c.owner != owner {
		return apperror.Forbidden(repository.MsgLimitedAccess)
	}
	return nil
}

func (f *fakeStore) VerifyCommentInThread(_ context.Context, id, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("VerifyCommentInThread")
	c, ok := f.comments[id]
	if !ok || c.threadID != threadID {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}
	return nil
}

func (f *fakeStore) AddUser(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddUser")
	if _, ok := f.users[u.Username]; ok {
		return apperror.Conflict(repository.MsgUsernameTaken)
	}
	u.ID = f.id("user")
	stored := *u
	f.users[u.Username] = &stored
	return nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUserByUsername")
	u, ok := f.users[username]
	if !ok {
		return nil, apperror.NotFound(repository.MsgUserNotFound)
	}
	result := *u
	return &result, nil
}

func (f *fakeStore) VerifyAvailableUsername(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("VerifyAvailableUsername")
	if _, ok := f.users[username]; ok {
		return apperror.Conflict(repository.MsgUsernameTaken)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
