package model

// NotificationType identifies a resource change.
type NotificationType int

const (
	// Added is sent for every element attached while a resource loads.
	Added NotificationType = iota
	// Unloaded is sent once when a loaded resource is unloaded.
	Unloaded
)

func (t NotificationType) String() string {
	switch t {
	case Added:
		return "added"
	case Unloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// Notification describes a change to a resource. Element is nil for Unloaded.
type Notification struct {
	Type     NotificationType
	Resource *Resource
	Element  *Element
}

// Observer receives resource notifications.
type Observer func(Notification)
