package models

// User is a row of the users table. Password is stored verbatim.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// CatalogEntry is a row of the files table.
type CatalogEntry struct {
	ID   int64  `json:"mid,omitempty"`
	Name string `json:"name"`
	Path string `json:"path"`
}
