package booking

type Step int

const (
	StepProduct Step = iota + 1
	StepSchedule
	StepContact
	StepPayment
	StepConfirmation
)

// TotalSteps is the length of the wizard.
const TotalSteps = int(StepConfirmation)

var stepNames = map[Step]string{
	StepProduct:      "product",
	StepSchedule:     "schedule",
	StepContact:      "contact",
	StepPayment:      "payment",
	StepConfirmation: "confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Step) Valid() bool {
	return s >= StepProduct && s <= StepConfirmation
}

// TimeSlots are the installation slots offered every open day.
var TimeSlots = []string{"09:00", "10:30", "12:00", "14:00", "15:30", "17:00"}

// InstallationCenter is the fixed address shown on the contact step.
const InstallationCenter = "Centre Rotharc, 72 Rue du Futur, Paris 75001"
