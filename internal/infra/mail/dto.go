package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// NotifyTo receives operational notices (lead transfers).
	NotifyTo string
}

type TransferNoticeData struct {
	OldUserID int64
	NewUserID int64
	LeadCount int64
}
