package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/careshare/internal/middleware"
	"github.com/mmynk/careshare/internal/models"
	"github.com/mmynk/careshare/internal/storage"
	"github.com/mmynk/careshare/pkg/api"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

var errNegativeBudget = errors.New("monthly_budget cannot be negative")

// FamilyService implements the Connect FamilyService: the member registry.
type FamilyService struct {
	store         storage.Store
	defaultBudget decimal.Decimal
}

var _ apiconnect.FamilyServiceHandler = (*FamilyService)(nil)

// NewFamilyService creates a FamilyService. New families without an
// explicit budget get defaultBudget.
func NewFamilyService(store storage.Store, defaultBudget decimal.Decimal) *FamilyService {
	return &FamilyService{store: store, defaultBudget: defaultBudget}
}

// CreateFamily creates a family and registers the caller as its first member.
func (s *FamilyService) CreateFamily(ctx context.Context, req *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	budget := s.defaultBudget
	if req.Msg.MonthlyBudget != nil {
		budget = req.Msg.MonthlyBudget.Round(2)
	}
	if budget.IsNegative() {
		return nil, invalidArgument(errNegativeBudget)
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(errors.New("name is required"))
	}
	family := &models.Family{Name: name, MonthlyBudget: budget}
	if err := s.store.CreateFamily(ctx, family); err != nil {
		slog.Error("CreateFamily failed", "error", err)
		return nil, toConnectError(err)
	}

	displayName := strings.TrimSpace(req.Msg.DisplayName)
	if displayName == "" {
		displayName = callerName(ctx)
	}
	member := &models.Member{FamilyID: family.ID, DisplayName: displayName, UserID: userID}
	if err := s.store.AddMember(ctx, member); err != nil {
		slog.Error("CreateFamily: failed to add creator", "family_id", family.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Family created", "family_id", family.ID, "user_id", userID)
	apiMember := toAPIMember(*member)
	return connect.NewResponse(&api.CreateFamilyResponse{
		Family: toAPIFamily(family),
		Member: &apiMember,
	}), nil
}

// GetFamily returns a family with its members.
func (s *FamilyService) GetFamily(ctx context.Context, req *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	members, err := familyMembers(ctx, s.store, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	family, err := s.store.GetFamily(ctx, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetFamilyResponse{
		Family:  toAPIFamily(family),
		Members: toAPIMembers(members),
	}), nil
}

// ListFamilies returns the families the caller belongs to.
func (s *FamilyService) ListFamilies(ctx context.Context, req *connect.Request[api.ListFamiliesRequest]) (*connect.Response[api.ListFamiliesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	families, err := s.store.ListFamiliesByUser(ctx, userID)
	if err != nil {
		slog.Error("ListFamilies failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	out := make([]api.Family, len(families))
	for i, f := range families {
		out[i] = *toAPIFamily(f)
	}
	return connect.NewResponse(&api.ListFamiliesResponse{Families: out}), nil
}

// AddMember registers a member. Members may be linked to a caregiver
// account; a linked account can then read and write the family's bills.
func (s *FamilyService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	members, err := familyMembers(ctx, s.store, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.UserID != "" {
		user, err := s.store.GetUserByID(ctx, req.Msg.UserID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if user == nil {
			return nil, invalidArgument(fmt.Errorf("user %s does not exist", req.Msg.UserID))
		}
		if isMember(req.Msg.UserID, members) {
			return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("user %s is already a member of this family", req.Msg.UserID))
		}
	}

	displayName := strings.TrimSpace(req.Msg.DisplayName)
	if displayName == "" {
		return nil, invalidArgument(errors.New("display_name is required"))
	}
	member := &models.Member{
		FamilyID:    req.Msg.FamilyID,
		DisplayName: displayName,
		UserID:      req.Msg.UserID,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		slog.Error("AddMember failed", "family_id", req.Msg.FamilyID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member added", "family_id", member.FamilyID, "member_id", member.ID)
	apiMember := toAPIMember(*member)
	return connect.NewResponse(&api.AddMemberResponse{Member: &apiMember}), nil
}

// ListMembers returns the family's members in registration order.
func (s *FamilyService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	members, err := familyMembers(ctx, s.store, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: toAPIMembers(members)}), nil
}

// SetMonthlyBudget replaces the family's budget ceiling.
func (s *FamilyService) SetMonthlyBudget(ctx context.Context, req *connect.Request[api.SetMonthlyBudgetRequest]) (*connect.Response[api.SetMonthlyBudgetResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget := req.Msg.MonthlyBudget.Round(2)
	if budget.IsNegative() {
		return nil, invalidArgument(errNegativeBudget)
	}
	if _, err := familyMembers(ctx, s.store, req.Msg.FamilyID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SetMonthlyBudget(ctx, req.Msg.FamilyID, budget); err != nil {
		slog.Error("SetMonthlyBudget failed", "family_id", req.Msg.FamilyID, "error", err)
		return nil, toConnectError(err)
	}
	family, err := s.store.GetFamily(ctx, req.Msg.FamilyID)
	if err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Monthly budget set", "family_id", family.ID, "budget", budget.StringFixed(2))
	return connect.NewResponse(&api.SetMonthlyBudgetResponse{Family: toAPIFamily(family)}), nil
}

// callerName picks a member name for the caller from their token.
func callerName(ctx context.Context) string {
	if name := middleware.GetDisplayName(ctx); name != "" {
		return name
	}
	email := middleware.GetEmail(ctx)
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "Me"
}
