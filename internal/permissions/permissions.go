package permissions

import "strings"

// Capability tokens the console gates tabs and controls on.
const (
	PermServiceFilterDate    = "service.filter.date"
	PermServiceFilterName    = "service.filter.name"
	PermServiceFilterPhone   = "service.filter.phone"
	PermServiceFilterStatus  = "service.filter.status"
	PermServiceFilterType    = "service.filter.type"
	PermServiceFilterDoctor  = "service.filter.doctor"
	PermServiceCreate        = "service.create"
	PermServiceUpdate        = "service.update"
	PermServiceDelete        = "service.delete"
	PermBookingView          = "reservation.view"
	PermBookingCreate        = "reservation.create"
	PermBookingUpdate        = "reservation.update"
	PermBookingDelete        = "reservation.delete"
	PermUserView             = "user.view"
	PermUserCreate           = "user.create"
	PermUserUpdate           = "user.update"
	PermUserDelete           = "user.delete"
	PermServiceTypeView      = "service_type.view"
	PermBonusView            = "bonus.view"
	PermBonusCoefficientEdit = "bonus.coefficient.update"
	PermExpenseView          = "expense.view"
	PermLogView              = "log.view"
	PermReportExport         = "report.export"
	PermAdvanceView          = "advance.view"
)

// Has reports whether the permission set contains the exact capability token.
func Has(set []string, perm string) bool {
	for _, p := range set {
		if strings.TrimSpace(p) == perm {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the listed tokens is held.
func HasAny(set []string, perms ...string) bool {
	for _, perm := range perms {
		if Has(set, perm) {
			return true
		}
	}
	return false
}

// HaveFilterPermissions reports whether the set grants at least one table
// filter capability (tokens of the form "<domain>.filter.<field>"). An empty
// set never does.
func HaveFilterPermissions(set []string) bool {
	for _, p := range set {
		parts := strings.Split(strings.TrimSpace(p), ".")
		if len(parts) == 3 && parts[1] == "filter" {
			return true
		}
	}
	return false
}
