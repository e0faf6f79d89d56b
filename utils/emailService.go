package utils

import (
	"coursify/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping email to", toEmail)
		return nil
	}

	from := mail.NewEmail("Coursify", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned %d", response.StatusCode)
	}

	return nil
}

// SendWelcomeEmail greets a new user after signup
func SendWelcomeEmail(name, email string) error {
	body := getEmailTemplate("Welcome to Coursify", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your account is ready. Type any topic you want to learn and we will build a full course around it, module by module.</p>
		<p>Happy learning!</p>`, name))
	return SendEmail(name, email, "Welcome to Coursify", body)
}

// SendCourseReadyEmail notifies the creator that a generated course was saved
func SendCourseReadyEmail(name, email, courseTitle string) error {
	body := getEmailTemplate("Your course is ready", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your course <strong>%s</strong> has been generated. Lesson content fills in as you open each lesson.</p>`, name, courseTitle))
	return SendEmail(name, email, "Your course is ready: "+courseTitle, body)
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Coursify &middot; AI-generated courses on any topic</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
