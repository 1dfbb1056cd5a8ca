package types

import "fmt"

type ApplicationStatus int

const (
	ApplicationStatusPending ApplicationStatus = iota
	ApplicationStatusApproved
	ApplicationStatusRejected
)

func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationStatusPending:
		return "Pending"
	case ApplicationStatusApproved:
		return "Approved"
	case ApplicationStatusRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("ApplicationStatus(%d)", int(s))
	}
}

func (s ApplicationStatus) Valid() bool {
	return s >= ApplicationStatusPending && s <= ApplicationStatusRejected
}

type Application struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	PhoneNumber        string            `json:"phoneNumber"`
	Email              string            `json:"email"`
	References         References        `json:"references"`
	SelfieImage        string            `json:"selfieImage"`
	DriverLicenseImage string            `json:"driverLicenseImage"`
	Status             ApplicationStatus `json:"status"`
	Note               string            `json:"note"`
}

type References struct {
	CompanyName1          string `json:"companyName1"`
	CompanyPhoneNumber1   string `json:"companyPhoneNumber1"`
	CompanyName1Confirmed bool   `json:"companyName1Confirmed"`
	CompanyName2          string `json:"companyName2"`
	CompanyPhoneNumber2   string `json:"companyPhoneNumber2"`
	CompanyName2Confirmed bool   `json:"companyName2Confirmed"`
}
