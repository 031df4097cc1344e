package whatsgw

// Message is one outbound WhatsApp message.
type Message struct {
	Phone string `json:"phone"` // E.164, digits only
	Text  string `json:"text"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

// Logger is the logging interface consumed by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
