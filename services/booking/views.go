package booking

import (
	"time"

	"rotharc/models"
	"rotharc/services/legal"
)

// WizardView is what a client renders for the current step. Exactly one of the
// step bodies is set, or none when its prerequisites are missing.
type WizardView struct {
	Step        int                 `json:"step"`
	StepName    string              `json:"stepName"`
	TotalSteps  int                 `json:"totalSteps"`
	Processing  bool                `json:"processing"`
	Status      models.DraftStatus  `json:"status"`
	Submitted   bool                `json:"submitted"`
	Reference   string              `json:"reference,omitempty"`
	LastError   string              `json:"lastError,omitempty"`
	FieldErrors map[string]string   `json:"fieldErrors,omitempty"`
	CanAdvance  bool                `json:"canAdvance"`
	CanRetreat  bool                `json:"canRetreat"`
	Draft       models.BookingDraft `json:"draft"`

	Products     []models.Product  `json:"products,omitempty"`
	Schedule     *ScheduleView     `json:"schedule,omitempty"`
	Contact      *ContactView      `json:"contact,omitempty"`
	Payment      *PaymentView      `json:"payment,omitempty"`
	Confirmation *ConfirmationView `json:"confirmation,omitempty"`
}

type ScheduleView struct {
	Product models.Product `json:"product"`
	Slots   []string       `json:"slots"`
	// Earliest selectable day; weekends are never selectable.
	MinDate string `json:"minDate"`
}

type ContactView struct {
	InstallationCenter string `json:"installationCenter"`
}

type PaymentView struct {
	ProductName  string  `json:"productName"`
	Price        float64 `json:"price"`
	Deposit      int64   `json:"deposit"`
	DepositLabel string  `json:"depositLabel"`
	Schedule     string  `json:"schedule,omitempty"`
	// Terms names the legal document accepted with agreedToTerms.
	Terms string `json:"terms"`
}

type ConfirmationView struct {
	Reference    string `json:"reference"`
	ProductName  string `json:"productName"`
	Schedule     string `json:"schedule"`
	ClientName   string `json:"clientName"`
	Email        string `json:"email"`
	Deposit      int64  `json:"deposit"`
	DepositLabel string `json:"depositLabel"`
}

// render builds the view of w. products is only used at the product step,
// product at the later steps; either may be nil.
func render(w *Wizard, today time.Time, products []models.Product, product *models.Product) *WizardView {
	s := w.Session()
	d := s.Draft
	v := &WizardView{
		Step:        s.Step,
		StepName:    w.Step().String(),
		TotalSteps:  TotalSteps,
		Processing:  s.Processing,
		Status:      d.Status,
		Submitted:   d.Submitted,
		Reference:   s.Reference,
		LastError:   s.LastError,
		FieldErrors: s.FieldErrors,
		CanAdvance:  w.CanAdvance(today),
		CanRetreat:  w.CanRetreat(),
		Draft:       d,
	}

	switch w.Step() {
	case StepProduct:
		v.Products = products
	case StepSchedule:
		if product != nil {
			v.Schedule = &ScheduleView{
				Product: *product,
				Slots:   TimeSlots,
				MinDate: today.Format(dateLayout),
			}
		}
	case StepContact:
		v.Contact = &ContactView{InstallationCenter: InstallationCenter}
	case StepPayment:
		if product != nil {
			deposit := Deposit(product.Price)
			v.Payment = &PaymentView{
				ProductName:  product.Name,
				Price:        product.Price,
				Deposit:      deposit,
				DepositLabel: FormatEUR(deposit),
				Terms:        legal.TermsOfSaleID,
			}
			if d.Date != "" && d.Time != "" {
				v.Payment.Schedule = FormatSchedule(d.Date, d.Time)
			}
		}
	case StepConfirmation:
		if product != nil && d.Date != "" && d.Time != "" {
			deposit := Deposit(product.Price)
			v.Confirmation = &ConfirmationView{
				Reference:    s.Reference,
				ProductName:  product.Name,
				Schedule:     FormatSchedule(d.Date, d.Time),
				ClientName:   models.User{FirstName: d.Contact.FirstName, LastName: d.Contact.LastName}.FullName(),
				Email:        d.Contact.Email,
				Deposit:      deposit,
				DepositLabel: FormatEUR(deposit),
			}
		}
	}
	return v
}
