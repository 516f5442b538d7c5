// Package documents renders the plain-text HR documents produced around a
// hire: offer letters, contract summaries and onboarding checklists.
package documents

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	offerLetterTemplate = "offer_letter.tmpl"
	contractTemplate    = "contract.tmpl"
	onboardingTemplate  = "onboarding.tmpl"
)

// DefaultSignatory signs offer letters when none is configured.
const DefaultSignatory = "Human Resources"

var templates = template.Must(template.New("documents").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// OfferLetter is the data of an offer letter.
type OfferLetter struct {
	CandidateName string
	JobTitle      string
	Department    string
	StartDate     string
	Salary        string
	JobType       string
	Signatory     string
	IssuedOn      string
}

// Contract is the data of a contract summary.
type Contract struct {
	EmployeeName string
	JobTitle     string
	ContractType string
	StartDate    string
	EndDate      string
	Salary       string
	Terms        string
}

// Onboarding is the data of an onboarding checklist.
type Onboarding struct {
	EmployeeName string
	JobTitle     string
	StartDate    string
	Items        []string
}

// DefaultOnboardingItems is the checklist every new employee starts from.
var DefaultOnboardingItems = []string{
	"Sign employment contract",
	"Submit identification and tax documents",
	"Set up payroll and bank details",
	"Receive equipment and system accounts",
	"Meet manager and team",
	"Complete orientation session",
}

// RenderOfferLetter renders an offer letter.
func RenderOfferLetter(data OfferLetter) (string, error) {
	if data.Signatory == "" {
		data.Signatory = DefaultSignatory
	}
	if data.IssuedOn == "" {
		data.IssuedOn = time.Now().Format("January 2, 2006")
	}
	data.CandidateName = clean(data.CandidateName)
	data.JobTitle = clean(data.JobTitle)
	data.Department = clean(data.Department)
	return render(offerLetterTemplate, data)
}

// RenderContract renders a contract summary.
func RenderContract(data Contract) (string, error) {
	data.EmployeeName = clean(data.EmployeeName)
	data.JobTitle = clean(data.JobTitle)
	data.ContractType = clean(data.ContractType)
	return render(contractTemplate, data)
}

// RenderOnboarding renders an onboarding checklist. Nil Items use
// DefaultOnboardingItems.
func RenderOnboarding(data Onboarding) (string, error) {
	if data.Items == nil {
		data.Items = DefaultOnboardingItems
	}
	data.EmployeeName = clean(data.EmployeeName)
	data.JobTitle = clean(data.JobTitle)
	return render(onboardingTemplate, data)
}

// FormatSalary formats an optional amount with two decimals.
func FormatSalary(amount *float64) string {
	if amount == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *amount)
}

func render(name string, data any) (string, error) {
	var out strings.Builder
	if err := templates.ExecuteTemplate(&out, name, data); err != nil {
		return "", &TemplateError{Template: name, Cause: err}
	}
	return out.String(), nil
}

// clean collapses whitespace, including newlines, in single-line fields so
// user input cannot reshape the document layout.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
