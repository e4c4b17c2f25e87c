package model

// Room is an inventory entry as reported by the inventory service.
type Room struct {
	RoomID    string `json:"roomId"`
	Available bool   `json:"available"`
}

// Identity is the caller identity reported by the auth service.
type Identity struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
