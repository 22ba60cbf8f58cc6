package service

import (
	"context"

	"github.com/mmynk/careshare/internal/middleware"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
)

// callerID returns the authenticated user or errAuthRequired.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", errAuthRequired
	}
	return userID, nil
}

// isMember reports whether userID is linked to one of members.
func isMember(userID string, members []models.Member) bool {
	for _, m := range members {
		if m.UserID != "" && m.UserID == userID {
			return true
		}
	}
	return false
}

// familyMembers checks that the caller belongs to familyID and returns the
// family's members in registration order.
func familyMembers(ctx context.Context, store storage.Store, familyID string) ([]models.Member, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := store.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	members, err := store.ListMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if !isMember(userID, members) {
		return nil, errNotAMember
	}
	return members, nil
}

// billWithAccess loads a bill and checks the caller belongs to its family.
func billWithAccess(ctx context.Context, store storage.Store, billID string) (*models.Bill, []models.Member, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, nil, err
	}
	bill, err := store.GetBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	members, err := familyMembers(ctx, store, bill.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	return bill, members, nil
}
