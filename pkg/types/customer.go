package types

const customerIDPrefix = "cust-"

type Customer struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	PhoneNumber   string            `json:"phoneNumber"`
	ApplicationID string            `json:"applicationId"`
	Profiles      []CustomerProfile `json:"profiles"`
}

// CustomerProfile tracks a customer's history with one profile. ProfileID is
// a plain lookup key, profiles are never owned by a customer.
type CustomerProfile struct {
	ProfileID          string `json:"profileId"`
	VisitorCount       int    `json:"visitorCount"`
	PositiveExperience bool   `json:"positiveExperience"`
	Charitable         bool   `json:"charitable"`
	BlackListed        bool   `json:"blackListed"`
}

func CustomerIDForApplication(applicationID string) string {
	return customerIDPrefix + applicationID
}

// NewCustomerFromApplication builds the customer record an approved
// application is promoted to.
func NewCustomerFromApplication(app *Application) *Customer {
	return &Customer{
		ID:            CustomerIDForApplication(app.ID),
		Name:          app.Name,
		PhoneNumber:   app.PhoneNumber,
		ApplicationID: app.ID,
		Profiles:      []CustomerProfile{},
	}
}

// Profile returns the entry for profileID, or nil.
func (c *Customer) Profile(profileID string) *CustomerProfile {
	for i := range c.Profiles {
		if c.Profiles[i].ProfileID == profileID {
			return &c.Profiles[i]
		}
	}
	return nil
}
