package domain

import "time"

// StoreState gates checkout availability. Catalog browsing is unaffected.
type StoreState string

const (
	StoreOnline  StoreState = "online"
	StoreOffline StoreState = "offline"
)

// Valid reports whether s is one of the two known states.
func (s StoreState) Valid() bool {
	return s == StoreOnline || s == StoreOffline
}

// StoreStatus is the singleton store-status record.
type StoreStatus struct {
	Status    StoreState `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Online reports whether checkout is currently accepted.
func (s StoreStatus) Online() bool {
	return s.Status == StoreOnline
}
