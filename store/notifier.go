package store

// Notice levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notice is a toast-style message emitted by every store operation. It is a
// required observable side effect, not optional logging.
type Notice struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	ProductID uint   `json:"product_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
}

// Notifier delivers notices to the session's user.
type Notifier interface {
	Notify(sessionID string, n Notice)
}

// NopNotifier drops all notices.
type NopNotifier struct{}

func (NopNotifier) Notify(string, Notice) {}
