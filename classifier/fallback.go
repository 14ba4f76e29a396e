package classifier

import (
	"regexp"
	"strings"

	"mailsift/models"
)

// fallbackRule pairs a category with the keyword pattern that selects it.
// Rules are evaluated in order and the first match wins, so the slice order
// is the priority order: Important > Marketing > Promotions > Social > Spam.
type fallbackRule struct {
	category models.Category
	pattern  *regexp.Regexp
}

var fallbackRules = []fallbackRule{
	{models.CategoryImportant, regexp.MustCompile(`\b(class|placement|college|university|exam|assignment|internshala.*important|urgent|action required)\b`)},
	{models.CategoryMarketing, regexp.MustCompile(`\b(zomato|swiggy|linkedin.*job|internshala.*job|newsletter|subscription)\b`)},
	{models.CategoryPromotions, regexp.MustCompile(`\b(sale|discount|offer|deal|coupon|save|off|promo)\b`)},
	{models.CategorySocial, regexp.MustCompile(`\b(facebook|instagram|twitter|linkedin.*connect|friend|tagged|mentioned)\b`)},
	{models.CategorySpam, regexp.MustCompile(`\b(spam|phishing|suspicious|verify your account|click here now|congratulations you won)\b`)},
}

// Fallback deterministically assigns a category from keyword rules over the
// message's subject, sender and snippet. It never fails and always returns
// one of the six canonical categories, General when nothing matches.
func Fallback(msg models.Message) models.Category {
	text := strings.ToLower(msg.Subject + " " + msg.From + " " + msg.Snippet)

	for _, rule := range fallbackRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return models.CategoryGeneral
}
