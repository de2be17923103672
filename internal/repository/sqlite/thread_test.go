package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

func TestAddThread(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")

	added, err := db.AddThread(context.Background(), &model.NewThread{
		Title: "T",
		Body:  "B",
		Owner: user.ID,
	})
	if err != nil {
		t.Fatalf("AddThread() error = %v", err)
	}

	if !strings.HasPrefix(added.ID, "thread-") {
		t.Errorf("ID = %q, want prefix %q", added.ID, "thread-")
	}
	if added.Title != "T" {
		t.Errorf("Title = %q, want %q", added.Title, "T")
	}
	if added.Owner != user.ID {
		t.Errorf("Owner = %q, want %q", added.Owner, user.ID)
	}
}

func TestAddThread_UnknownOwner(t *testing.T) {
	db := newTestDB(t)

	_, err := db.AddThread(context.Background(), &model.NewThread{
		Title: "T",
		Body:  "B",
		Owner: "user-missing",
	})
	if err == nil {
		t.Fatal("AddThread() should fail when the owner does not exist (foreign key)")
	}
}

func TestGetThreadDetailByID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	added := createTestThread(t, db, user.ID)

	detail, err := db.GetThreadDetailByID(context.Background(), added.ID)
	if err != nil {
		t.Fatalf("GetThreadDetailByID() error = %v", err)
	}

	if detail.ID != added.ID {
		t.Errorf("ID = %q, want %q", detail.ID, added.ID)
	}
	if detail.Title != "some thread title" {
		t.Errorf("Title = %q, want %q", detail.Title, "some thread title")
	}
	if detail.Body != "some thread body" {
		t.Errorf("Body = %q, want %q", detail.Body, "some thread body")
	}
	if detail.Username != "dicoding" {
		t.Errorf("Username = %q, want %q", detail.Username, "dicoding")
	}
	if _, err := time.Parse(repository.DateLayout, detail.Date); err != nil {
		t.Errorf("Date = %q is not in DateLayout: %v", detail.Date, err)
	}
}

func TestGetThreadDetailByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetThreadDetailByID(context.Background(), "thread-xxx")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetThreadDetailByID() error = %v, want ErrNotFound", err)
	}
	if err.Error() != "thread not found" {
		t.Errorf("message = %q, want %q", err.Error(), "thread not found")
	}
}

func TestCheckThreadAvailability(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	added := createTestThread(t, db, user.ID)

	if err := db.CheckThreadAvailability(context.Background(), added.ID); err != nil {
		t.Errorf("CheckThreadAvailability(existing) error = %v", err)
	}

	err := db.CheckThreadAvailability(context.Background(), "thread-xxx")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CheckThreadAvailability(missing) error = %v, want ErrNotFound", err)
	}
}
