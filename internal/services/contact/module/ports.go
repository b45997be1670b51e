package module

import "contactguard/internal/services/contact/domain"

// Ports holds the ports exposed by the contact module
type Ports struct {
	Service domain.ServicePort
	Rules   domain.RulesPort
}
