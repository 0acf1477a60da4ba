package email

import "fmt"

// BuildOrderConfirmationBody builds the HTML body for the confirmation
// mail.
func BuildOrderConfirmationBody(name, orderID string, total float64) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Thank you for your order, %s!</h1>
	<p>We have received your order and are getting it ready.</p>
	<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
		<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
		<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
	</div>
	<p style="font-size: 16px;">Order total: <strong>%.2f</strong></p>
	<p style="color: #666; font-size: 13px;">You will receive another email when your order ships.</p>
</body>
</html>`, name, orderID, total)
}

// BuildStatusUpdateBody builds the HTML body for a status change mail.
func BuildStatusUpdateBody(name, orderID, status string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Hi %s,</h1>
	<p>Your order <span style="font-family: monospace;">%s</span> is now <strong>%s</strong>.</p>
	<p style="color: #666; font-size: 13px;">If you have any questions, just reply to this email.</p>
</body>
</html>`, name, orderID, status)
}
