package model

import (
	"nestling/shared/constant"
	"nestling/shared/failure"
)

// CustomerInfo identifies the booking parent. Construct through
// NewCustomerInfo so the required fields are present.
type CustomerInfo struct {
	Name             string `db:"customer_name"              json:"name"`
	Email            string `db:"customer_email"             json:"email"`
	Phone            string `db:"customer_phone"             json:"phone"`
	EmergencyContact string `db:"customer_emergency_contact" json:"emergency_contact"`
}

func NewCustomerInfo(name, email, phone, emergencyContact string) (CustomerInfo, error) {
	if name == constant.Empty || email == constant.Empty || phone == constant.Empty {
		return CustomerInfo{}, failure.Validation("customer name, email and phone are required")
	}

	return CustomerInfo{
		Name:             name,
		Email:            email,
		Phone:            phone,
		EmergencyContact: emergencyContact,
	}, nil
}

// ChildInfo describes the child the booking covers.
type ChildInfo struct {
	Name                string `db:"child_name"                 json:"name"`
	Age                 int    `db:"child_age"                  json:"age"`
	SpecialNeeds        string `db:"child_special_needs"        json:"special_needs"`
	Allergies           string `db:"child_allergies"            json:"allergies"`
	PickupAuthorization string `db:"child_pickup_authorization" json:"pickup_authorization"`
	SpecialInstructions string `db:"child_special_instructions" json:"special_instructions"`
}

func NewChildInfo(name string, age int, specialNeeds, allergies, pickupAuthorization, specialInstructions string) (ChildInfo, error) {
	if name == constant.Empty {
		return ChildInfo{}, failure.Validation("child name is required")
	}

	if age < 0 {
		return ChildInfo{}, failure.Validation("child age must be non-negative")
	}

	return ChildInfo{
		Name:                name,
		Age:                 age,
		SpecialNeeds:        specialNeeds,
		Allergies:           allergies,
		PickupAuthorization: pickupAuthorization,
		SpecialInstructions: specialInstructions,
	}, nil
}
