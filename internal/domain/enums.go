package domain

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// ValidSessionStatuses is the canonical set of accepted status strings.
var ValidSessionStatuses = map[string]bool{
	"active": true, "completed": true,
}
