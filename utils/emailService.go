package utils

import (
	"fmt"
	"net/smtp"

	"servehours/config"
)

// SendCertificateEmail notifies a participant that their completion
// certificate has been issued. Best effort; callers log and move on.
func SendCertificateEmail(name, email, verificationCode string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: Your Community Service Completion Certificate\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">You have completed your required community service hours.</p>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your certificate verification code is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 32px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Courts and employers can confirm your certificate with this code at any time.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using our service.</p>
				</div>
			</body>
		</html>
	`, name, verificationCode)

	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}
