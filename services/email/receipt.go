package email

import (
	// Go Internal Packages
	"fmt"

	// Local Packages
	models "swipepoint/models"
)

// ReceiptSubject is the subject line for payment receipts.
const ReceiptSubject = "Payment Receipt - SwipePoint"

// ReceiptBody renders the HTML receipt for a charged payment.
func ReceiptBody(p models.Payment) string {
	name := p.Firstname
	if p.Lastname != "" {
		name = name + " " + p.Lastname
	}
	return fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Payment Receipt</h2>
    <p>Hello %s,</p>
    <p>Your payment has been processed.</p>
    <p><strong>Reference:</strong> %s</p>
    <p><strong>Amount:</strong> %.2f</p>
    <p><strong>Fee:</strong> %.2f</p>
    <p><strong>Net Amount:</strong> %.2f</p>
    <p><strong>Status:</strong> %s</p>
    <p>Thank you!</p>
    <p>The SwipePoint Team</p>
  </body>
</html>
`, name, p.Reference, p.Amount, p.Fee, p.NetAmount, p.Status)
}
