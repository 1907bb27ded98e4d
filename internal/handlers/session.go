package handlers

// Session keys
const (
	SessionParentID = "parent_id"
	SessionUsername = "username"
)
