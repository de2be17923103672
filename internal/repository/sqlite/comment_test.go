package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
)

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	thread := createTestThread(t, db, user.ID)

	added, err := db.AddComment(context.Background(), &model.NewComment{
		Content:  "some thread comment",
		ThreadID: thread.ID,
		Owner:    user.ID,
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if !strings.HasPrefix(added.ID, "comment-") {
		t.Errorf("ID = %q, want prefix %q", added.ID, "comment-")
	}
	if added.Content != "some thread comment" {
		t.Errorf("Content = %q, want %q", added.Content, "some thread comment")
	}
	if added.Owner != user.ID {
		t.Errorf("Owner = %q, want %q", added.Owner, user.ID)
	}
}

func TestAddComment_UnknownThread(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")

	_, err := db.AddComment(context.Background(), &model.NewComment{
		Content:  "orphan",
		ThreadID: "thread-missing",
		Owner:    user.ID,
	})
	if err == nil {
		t.Fatal("AddComment() should fail for a thread that does not exist (foreign key)")
	}
}

func TestGetCommentsByThreadID_Empty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	thread := createTestThread(t, db, user.ID)

	comments, err := db.GetCommentsByThreadID(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("GetCommentsByThreadID() error = %v", err)
	}
	if comments == nil {
		t.Error("GetCommentsByThreadID() returned nil, want empty slice")
	}
	if len(comments) != 0 {
		t.Errorf("len = %d, want 0", len(comments))
	}
}

func TestGetCommentsByThreadID_OrderAndShape(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	thread := createTestThread(t, db, alice.ID)

	first := createTestComment(t, db, thread.ID, alice.ID, "first")
	second := createTestComment(t, db, thread.ID, bob.ID, "second")
	third := createTestComment(t, db, thread.ID, alice.ID, "third")

	comments, err := db.GetCommentsByThreadID(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("GetCommentsByThreadID() error = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("len = %d, want 3", len(comments))
	}

	wantIDs := []string{first.ID, second.ID, third.ID}
	for i, c := range comments {
		if c["id"] != wantIDs[i] {
			t.Errorf("comments[%d].id = %v, want %v", i, c["id"], wantIDs[i])
		}
	}
	if comments[1]["username"] != "bob" {
		t.Errorf("comments[1].username = %v, want bob", comments[1]["username"])
	}

	// Every row must build a CommentDetail.
	for i, c := range comments {
		if _, err := model.NewCommentDetail(c); err != nil {
			t.Errorf("NewCommentDetail(comments[%d]) error = %v", i, err)
		}
	}
}

func TestDeleteCommentByID_SoftDeletes(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	thread := createTestThread(t, db, user.ID)
	comment := createTestComment(t, db, thread.ID, user.ID, "original")

	if err := db.DeleteCommentByID(context.Background(), comment.ID); err != nil {
		t.Fatalf("DeleteCommentByID() error = %v", err)
	}

	comments, err := db.GetCommentsByThreadID(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("GetCommentsByThreadID() error = %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("row was removed, want it kept: len = %d", len(comments))
	}
	if comments[0]["is_delete"] != true {
		t.Errorf("is_delete = %v, want true", comments[0]["is_delete"])
	}
	if comments[0]["content"] != "original" {
		t.Errorf("content = %v, stored content must not change", comments[0]["content"])
	}

	// Deleting again still finds the row.
	if err := db.DeleteCommentByID(context.Background(), comment.ID); err != nil {
		t.Errorf("second DeleteCommentByID() error = %v", err)
	}
}

func TestDeleteCommentByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteCommentByID(context.Background(), "comment-xxx")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteCommentByID() error = %v, want ErrNotFound", err)
	}
}

func TestVerifyCommentOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	thread := createTestThread(t, db, owner.ID)
	comment := createTestComment(t, db, thread.ID, owner.ID, "mine")

	if err := db.VerifyCommentOwner(context.Background(), comment.ID, owner.ID); err != nil {
		t.Errorf("VerifyCommentOwner(owner) error = %v", err)
	}

	err := db.VerifyCommentOwner(context.Background(), comment.ID, other.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("VerifyCommentOwner(other) error = %v, want ErrForbidden", err)
	}
	if err.Error() != "Limited access!" {
		t.Errorf("message = %q, want %q", err.Error(), "Limited access!")
	}
}

func TestVerifyCommentInThread(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "dicoding")
	thread := createTestThread(t, db, user.ID)
	otherThread := createTestThread(t, db, user.ID)
	comment := createTestComment(t, db, thread.ID, user.ID, "here")

	if err := db.VerifyCommentInThread(context.Background(), comment.ID, thread.ID); err != nil {
		t.Errorf("VerifyCommentInThread(same thread) error = %v", err)
	}

	err := db.VerifyCommentInThread(context.Background(), comment.ID, otherThread.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("VerifyCommentInThread(other thread) error = %v, want ErrNotFound", err)
	}
	if err.Error() != "Comments not found." {
		t.Errorf("message = %q, want %q", err.Error(), "Comments not found.")
	}

	// A deleted comment still exists.
	if err := db.DeleteCommentByID(context.Background(), comment.ID); err != nil {
		t.Fatalf("DeleteCommentByID() error = %v", err)
	}
	if err := db.VerifyCommentInThread(context.Background(), comment.ID, thread.ID); err != nil {
		t.Errorf("VerifyCommentInThread(deleted) error = %v", err)
	}
}
