package resolver

import (
	"fmt"
	"slices"

	dErrors "onsightnow/pkg/domain-errors"
)

// CRM entity logical names with a known path to an email address.
const (
	EntitySystemUser       = "systemuser"
	EntityBookableResource = "bookableresource"
	EntityBooking          = "bookableresourcebooking"
	EntityWorkOrder        = "msdyn_workorder"
)

// CallTarget picks which participant of a work order is called.
type CallTarget string

const (
	TargetFieldTech    CallTarget = "fieldtech"
	TargetRemoteExpert CallTarget = "expert"
)

// ParseTarget maps a command parameter to a CallTarget. Only "fieldtech"
// selects the field technician; anything else, including "", is the remote expert.
func ParseTarget(s string) CallTarget {
	if CallTarget(s) == TargetFieldTech {
		return TargetFieldTech
	}
	return TargetRemoteExpert
}

var (
	systemUserToEmail = mustChain(
		Step{EntityType: EntitySystemUser, Selector: SelectSpec{Field: "internalemailaddress"}},
	)

	bookableResourceToEmail = mustChain(
		Step{EntityType: EntityBookableResource, Selector: SelectSpec{Field: "_userid_value"}},
	).Then(systemUserToEmail)

	bookingToEmail = mustChain(
		Step{EntityType: EntityBooking, Selector: SelectSpec{Field: "_resource_value"}},
	).Then(bookableResourceToEmail)

	workOrderToFieldTechEmail = mustChain(
		Step{EntityType: EntityWorkOrder, Selector: MustExpand("msdyn_msdyn_workorder_bookableresourcebooking_WorkOrder($select=bookableresourcebookingid)")},
	).Then(bookingToEmail)

	workOrderToRemoteExpertEmail = mustChain(
		Step{EntityType: EntityWorkOrder, Selector: SelectSpec{Field: "_msdyn_supportcontact_value"}},
	).Then(bookableResourceToEmail)
)

// SystemUserToEmail: systemuser -> internalemailaddress.
func SystemUserToEmail() Chain { return slices.Clone(systemUserToEmail) }

// BookableResourceToEmail: bookableresource -> user -> email.
func BookableResourceToEmail() Chain { return slices.Clone(bookableResourceToEmail) }

// BookingToEmail: bookableresourcebooking -> resource -> user -> email.
func BookingToEmail() Chain { return slices.Clone(bookingToEmail) }

// WorkOrderToEmail returns the work order chain for the given target: the
// first booking's field technician, or the designated support contact.
func WorkOrderToEmail(target CallTarget) Chain {
	if target == TargetFieldTech {
		return slices.Clone(workOrderToFieldTechEmail)
	}
	return slices.Clone(workOrderToRemoteExpertEmail)
}

// ChainFor selects the chain that leads from entityType to an email address.
// target only matters for work orders.
func ChainFor(entityType string, target CallTarget) (Chain, error) {
	switch entityType {
	case EntityWorkOrder:
		return WorkOrderToEmail(target), nil
	case EntityBooking:
		return BookingToEmail(), nil
	case EntityBookableResource:
		return BookableResourceToEmail(), nil
	case EntitySystemUser:
		return SystemUserToEmail(), nil
	default:
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("no email resolution chain for entity type %q", entityType))
	}
}
