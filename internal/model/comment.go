package model

// DeletedCommentContent replaces the content of a soft-deleted comment
// whenever it is shown.
const DeletedCommentContent = "**komentar telah dihapus**"

// CommentState is the lifecycle state of a comment. Active is the initial
// state; Deleted is terminal.
type CommentState int

const (
	CommentActive CommentState = iota
	CommentDeleted
)

func (s CommentState) String() string {
	if s == CommentDeleted {
		return "deleted"
	}
	return "active"
}

// NewComment is the validated input for posting a comment on a thread.
type NewComment struct {
	Content  string
	ThreadID string
	Owner    string
}

var newCommentSchema = schema{
	entity: "comment",
	fields: []field{
		{key: "content", kind: kindString},
		{key: "threadId", kind: kindString},
		{key: "owner", kind: kindString},
	},
	missingMsg: "gagal membuat comment karena properti yang dibutuhkan tidak ada",
	invalidMsg: "gagal membuat comment karena tipe data tidak sesuai",
}

// NewNewComment validates p and builds a NewComment from it.
func NewNewComment(p Payload) (*NewComment, error) {
	if err := newCommentSchema.check(p); err != nil {
		return nil, err
	}
	return &NewComment{
		Content:  p["content"].(string),
		ThreadID: p["threadId"].(string),
		Owner:    p["owner"].(string),
	}, nil
}

// AddedComment is what the comment store returns after an insert.
type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

var addedCommentSchema = schema{
	entity: "added comment",
	fields: []field{
		{key: "id", kind: kindString},
		{key: "content", kind: kindString},
		{key: "owner", kind: kindString},
	},
	missingMsg: "added comment payload is missing a required property",
	invalidMsg: "added comment payload has an invalid property type",
}

// NewAddedComment validates an inserted comment row.
func NewAddedComment(p Payload) (*AddedComment, error) {
	if err := addedCommentSchema.check(p); err != nil {
		return nil, err
	}
	return &AddedComment{
		ID:      p["id"].(string),
		Content: p["content"].(string),
		Owner:   p["owner"].(string),
	}, nil
}

// CommentDetail is one stored comment joined with its author's username.
// Content is the stored text; use View to get what may be shown.
type CommentDetail struct {
	ID       string
	Username string
	Date     string
	Content  string
	State    CommentState
}

var commentDetailSchema = schema{
	entity: "comment detail",
	fields: []field{
		{key: "id", kind: kindString},
		{key: "username", kind: kindString},
		{key: "date", kind: kindString},
		{key: "content", kind: kindString},
		{key: "is_delete", kind: kindBool, optional: true},
	},
	missingMsg: "comment detail payload is missing a required property",
	invalidMsg: "comment detail payload has an invalid property type",
}

// NewCommentDetail builds a CommentDetail from a storage row. A missing or
// nil is_delete means the comment is active.
func NewCommentDetail(p Payload) (*CommentDetail, error) {
	if err := commentDetailSchema.check(p); err != nil {
		return nil, err
	}

	state := CommentActive
	if deleted, _ := p["is_delete"].(bool); deleted {
		state = CommentDeleted
	}

	return &CommentDetail{
		ID:       p["id"].(string),
		Username: p["username"].(string),
		Date:     p["date"].(string),
		Content:  p["content"].(string),
		State:    state,
	}, nil
}

// CommentView is a comment as served to clients. It never carries the
// deletion flag.
type CommentView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Date     string `json:"date"`
	Content  string `json:"content"`
}

// View projects c for display, masking the content of deleted comments.
func (c *CommentDetail) View() CommentView {
	content := c.Content
	if c.State == CommentDeleted {
		content = DeletedCommentContent
	}
	return CommentView{
		ID:       c.ID,
		Username: c.Username,
		Date:     c.Date,
		Content:  content,
	}
}
