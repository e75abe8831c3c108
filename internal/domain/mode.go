package domain

// Mode is the means of transport used for a trip.
type Mode string

const (
	ModeBicycle         Mode = "Fahrrad"
	ModeWalk            Mode = "Fuß"
	ModeCar             Mode = "MIV"
	ModeCarPassenger    Mode = "MIV-Mitfahrer"
	ModeOther           Mode = "Sonstiges"
	ModePublicTransport Mode = "ÖV"
)

// Modes returns every mode in the order the diary presents them
// (case-insensitive alphabetical).
func Modes() []Mode {
	return []Mode{ModeBicycle, ModeWalk, ModeCar, ModeCarPassenger, ModeOther, ModePublicTransport}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, v := range Modes() {
		if m == v {
			return true
		}
	}
	return false
}

// Description lists what counts as this mode; empty when self-explanatory.
func (m Mode) Description() string {
	switch m {
	case ModeBicycle:
		return "Pedelec, Lastenrad, E-Scooter, Cityroller etc."
	case ModeCarPassenger:
		return "Mitfahrten, Taxifahrten etc."
	case ModeOther:
		return "Schiff, Flugzeug, Rakete etc."
	}
	return ""
}

// Purpose is the reason a trip was made.
type Purpose string

const (
	PurposeWork      Purpose = "Arbeit"
	PurposeBusiness  Purpose = "Dienstlich"
	PurposeEducation Purpose = "Ausbildung"
	PurposeShopping  Purpose = "Einkauf"
	PurposeErrand    Purpose = "Erledigung"
	PurposeLeisure   Purpose = "Freizeit"
	PurposeEscort    Purpose = "Begleitung"
)

// PurposeRule is shown alongside the purpose list.
const PurposeRule = "Wege zurück nach Hause sind immer Freizeit-Wege!"

// Purposes returns every purpose in case-insensitive alphabetical order.
func Purposes() []Purpose {
	return []Purpose{
		PurposeWork, PurposeEducation, PurposeEscort, PurposeBusiness,
		PurposeShopping, PurposeErrand, PurposeLeisure,
	}
}

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	for _, v := range Purposes() {
		if p == v {
			return true
		}
	}
	return false
}

// Description gives a typical example of a trip with this purpose.
func (p Purpose) Description() string {
	switch p {
	case PurposeWork:
		return "Weg zur Arbeitsstätte"
	case PurposeEducation:
		return "Zur Universität, zur Schule etc."
	case PurposeEscort:
		return "Kind zur Schule bringen"
	case PurposeBusiness:
		return "Dienstreise, Weg während der Arbeit"
	case PurposeShopping:
		return "Lebensmittel/Getränke im Supermarkt"
	case PurposeErrand:
		return "Arztbesuch"
	case PurposeLeisure:
		return "Weg nach Hause, zur Mensa, zum Sport, zu Freunden etc."
	}
	return ""
}
