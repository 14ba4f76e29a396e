package classifier

import (
	"fmt"

	"mailsift/models"
	"mailsift/utils"
)

// previewLimit bounds how much message text goes into a prompt.
const previewLimit = 500

const systemPrompt = `You are an email classifier. Classify emails into EXACTLY ONE of these categories:

**Important**: Emails that are personal or work-related and require immediate attention like class, placement drive, message from internshala or any other important requirement. This includes urgent college notifications, placement opportunities, important internshala messages.

**Promotions**: Emails related to sales, discounts, and marketing campaigns. Direct product sales and discount offers.

**Social**: Emails from social networks (Facebook, Instagram, Twitter, LinkedIn social notifications), friends, and family.

**Marketing**: Emails related to marketing, newsletters, and notifications from LinkedIn (job posts), Internshala job opportunities, Zomato, Swiggy, food delivery services, and similar platforms.

**Spam**: Unwanted or unsolicited emails, suspicious senders, phishing attempts.

**General**: If none of the above are matched, use General.

CRITICAL RULES:
- Internshala placement/class/important alerts → Important
- Internshala job opportunities/newsletters → Marketing
- LinkedIn job postings → Marketing
- LinkedIn connection requests → Social
- Food delivery (Zomato, Swiggy) → Marketing
- Direct sales/discounts → Promotions
- College/University important notices → Important
- Placement drives → Important
- Unknown/suspicious → Spam

Respond with ONLY ONE WORD: the category name (Important, Promotions, Social, Marketing, Spam, or General).`

// buildUserPrompt assembles the bounded per-message prompt: sender, subject
// and a preview taken from the snippet when present, the body otherwise.
func buildUserPrompt(msg models.Message) string {
	from := msg.From
	if from == "" {
		from = "Unknown"
	}
	subject := msg.Subject
	if subject == "" {
		subject = "No Subject"
	}
	preview := msg.Snippet
	if preview == "" {
		preview = msg.Body
	}
	preview = utils.Truncate(preview, previewLimit)

	return fmt.Sprintf("Classify this email:\n\nFrom: %s\nSubject: %s\nPreview: %s", from, subject, preview)
}
