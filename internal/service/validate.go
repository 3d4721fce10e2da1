package service

import (
	"regexp"
	"strings"
)

var customerIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// validateCustomerID checks that the customer identifier is present and
// contains only letters, digits and dashes. Customer IDs are external
// identifiers and are not checked against any registry.
func validateCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return invalidData("customer id is required")
	}
	if !customerIDPattern.MatchString(customerID) {
		return invalidData("customer id contains invalid characters")
	}
	return nil
}

// validateAddresses checks that both addresses are present and distinct
// after trimming.
func validateAddresses(origin, destination string) error {
	if strings.TrimSpace(origin) == "" {
		return invalidData("origin address is required")
	}
	if strings.TrimSpace(destination) == "" {
		return invalidData("destination address is required")
	}
	if strings.TrimSpace(origin) == strings.TrimSpace(destination) {
		return invalidData("origin and destination cannot be the same")
	}
	return nil
}
