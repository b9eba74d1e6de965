// Package samples provides sample customer questions for trying out the
// classifier from the CLI console. The lists mirror the kinds of messages
// each department typically receives, plus deliberately ambiguous ones that
// should land on the low-confidence clarification path.
package samples

import "github.com/Nyukimin/supportdesk/internal/domain/routing"

// Ambiguous is the pseudo-category for questions that could belong to
// multiple departments.
const Ambiguous = "ambiguous"

var billingQuestions = []string{
	"I was charged twice for my monthly subscription",
	"How do I update my credit card information?",
	"When will my refund be processed?",
	"I need a copy of my last invoice",
	"Can I change my billing cycle from monthly to annual?",
}

var techSupportQuestions = []string{
	"The app keeps crashing when I try to upload photos",
	"I forgot my password and can't reset it",
	"The dashboard isn't showing my latest data",
	"I'm getting an error code XZ-404 when I try to login",
	"How do I connect your software to my email account?",
}

var salesQuestions = []string{
	"What's the difference between your Basic and Pro plans?",
	"Do you offer discounts for educational institutions?",
	"I want to upgrade my subscription to the enterprise level",
	"Does your product support integration with Salesforce?",
	"Can I get a demo of your new features?",
}

var ambiguousQuestions = []string{
	"I need help with my account",
	"I'm having problems with your product",
	"Can someone please contact me as soon as possible?",
	"What are the steps to set this up and how much does it cost?",
	"I'm not sure if I'm in the right place",
}

// ForCategory returns the sample questions for a category name.
// Valid names are the three department names plus "ambiguous".
func ForCategory(name string) []string {
	switch name {
	case routing.DepartmentBilling.String():
		return billingQuestions
	case routing.DepartmentTechSupport.String():
		return techSupportQuestions
	case routing.DepartmentSales.String():
		return salesQuestions
	case Ambiguous:
		return ambiguousQuestions
	default:
		return nil
	}
}

// Categories returns the category names in display order.
func Categories() []string {
	return []string{
		routing.DepartmentBilling.String(),
		routing.DepartmentTechSupport.String(),
		routing.DepartmentSales.String(),
		Ambiguous,
	}
}

// All returns every sample question keyed by category name.
func All() map[string][]string {
	all := make(map[string][]string, 4)
	for _, name := range Categories() {
		all[name] = ForCategory(name)
	}
	return all
}
