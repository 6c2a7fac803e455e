package models

// Backup is the portable export of every collection. On restore, each key
// that is present replaces its collection wholesale; absent keys leave the
// existing data untouched.
type Backup struct {
	Products     []Product      `json:"products"`
	Transactions []Transaction  `json:"transactions"`
	Customers    []Customer     `json:"customers"`
	Users        []BackupUser   `json:"users"`
	Settings     *StoreSettings `json:"settings,omitempty"`
	Timestamp    string         `json:"timestamp"`
	Version      string         `json:"version"`
}

// BackupUser carries the PIN that API responses deliberately omit; a restore
// would otherwise lock every user out.
type BackupUser struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	PIN  string   `json:"pin"`
	Role UserRole `json:"role"`
}

const BackupVersion = "1.0"

type ResetRequest struct {
	IncludeDemoData bool `json:"includeDemoData"`
}
