package mailer

// EmailJob is the message published to the email queue and consumed by the
// email worker. Reset emails are plain text; Subject and Text are rendered
// by the producer.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
