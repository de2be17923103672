package model

// User is a registered forum member. Threads and comments reference users
// by ID and show them by Username.
//
// Password holds a bcrypt hash, never the plaintext, and is left out of
// JSON output.
type User struct {
	ID       string `json:"id"       db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-"        db:"password"`
	Fullname string `json:"fullname" db:"fullname"`
}
