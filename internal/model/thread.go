package model

// NewThread is the validated input for creating a thread.
type NewThread struct {
	Title string
	Body  string
	Owner string
}

var newThreadSchema = schema{
	entity: "thread",
	fields: []field{
		{key: "title", kind: kindString},
		{key: "body", kind: kindString},
		{key: "owner", kind: kindString},
	},
	missingMsg: "gagal membuat thread karena properti yang dibutuhkan tidak ada",
	invalidMsg: "gagal menambahkan thread karena tipe data tidak sesuai",
}

// NewNewThread validates p and builds a NewThread from it.
func NewNewThread(p Payload) (*NewThread, error) {
	if err := newThreadSchema.check(p); err != nil {
		return nil, err
	}
	return &NewThread{
		Title: p["title"].(string),
		Body:  p["body"].(string),
		Owner: p["owner"].(string),
	}, nil
}

// AddedThread is what the thread store returns after an insert.
type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

var addedThreadSchema = schema{
	entity: "added thread",
	fields: []field{
		{key: "id", kind: kindString},
		{key: "title", kind: kindString},
		{key: "owner", kind: kindString},
	},
	missingMsg: "added thread payload is missing a required property",
	invalidMsg: "added thread payload has an invalid property type",
}

// NewAddedThread validates an inserted thread row.
func NewAddedThread(p Payload) (*AddedThread, error) {
	if err := addedThreadSchema.check(p); err != nil {
		return nil, err
	}
	return &AddedThread{
		ID:    p["id"].(string),
		Title: p["title"].(string),
		Owner: p["owner"].(string),
	}, nil
}

// ThreadDetail is a thread joined with its author's username.
type ThreadDetail struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Date     string `json:"date"`
	Username string `json:"username"`
}

var threadDetailSchema = schema{
	entity: "thread detail",
	fields: []field{
		{key: "id", kind: kindString},
		{key: "title", kind: kindString},
		{key: "body", kind: kindString},
		{key: "date", kind: kindString},
		{key: "username", kind: kindString},
	},
	missingMsg: "thread detail payload is missing a required property",
	invalidMsg: "thread detail payload has an invalid property type",
}

// NewThreadDetail builds a ThreadDetail from a storage row.
func NewThreadDetail(p Payload) (*ThreadDetail, error) {
	if err := threadDetailSchema.check(p); err != nil {
		return nil, err
	}
	return &ThreadDetail{
		ID:       p["id"].(string),
		Title:    p["title"].(string),
		Body:     p["body"].(string),
		Date:     p["date"].(string),
		Username: p["username"].(string),
	}, nil
}

// ThreadView is the read model served for GET /threads/{threadId}: the
// thread detail plus its comments, oldest first.
type ThreadView struct {
	ThreadDetail
	Comments []CommentView `json:"comments"`
}
