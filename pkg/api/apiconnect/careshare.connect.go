// Package apiconnect wires the careshare.v1 services to Connect handlers
// and clients. Every handler and client uses the JSON codec from package api.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/careshare/pkg/api"
)

// PackagePrefix is the URL path prefix shared by every careshare.v1 procedure.
const PackagePrefix = "/careshare.v1."

const (
	AuthServiceName    = "careshare.v1.AuthService"
	FamilyServiceName  = "careshare.v1.FamilyService"
	BillServiceName    = "careshare.v1.BillService"
	ReportServiceName  = "careshare.v1.ReportService"
	ReceiptServiceName = "careshare.v1.ReceiptService"
)

// Fully-qualified procedure paths.
const (
	AuthServiceRegisterProcedure                 = "/careshare.v1.AuthService/Register"
	AuthServiceLoginProcedure                    = "/careshare.v1.AuthService/Login"
	FamilyServiceCreateFamilyProcedure           = "/careshare.v1.FamilyService/CreateFamily"
	FamilyServiceGetFamilyProcedure              = "/careshare.v1.FamilyService/GetFamily"
	FamilyServiceListFamiliesProcedure           = "/careshare.v1.FamilyService/ListFamilies"
	FamilyServiceAddMemberProcedure              = "/careshare.v1.FamilyService/AddMember"
	FamilyServiceListMembersProcedure            = "/careshare.v1.FamilyService/ListMembers"
	FamilyServiceSetMonthlyBudgetProcedure       = "/careshare.v1.FamilyService/SetMonthlyBudget"
	BillServicePreviewSplitProcedure             = "/careshare.v1.BillService/PreviewSplit"
	BillServiceSwitchSplitTypeProcedure          = "/careshare.v1.BillService/SwitchSplitType"
	BillServiceCreateBillProcedure               = "/careshare.v1.BillService/CreateBill"
	BillServiceGetBillProcedure                  = "/careshare.v1.BillService/GetBill"
	BillServiceListBillsProcedure                = "/careshare.v1.BillService/ListBills"
	BillServiceMarkBillPaidProcedure             = "/careshare.v1.BillService/MarkBillPaid"
	BillServiceDeleteBillProcedure               = "/careshare.v1.BillService/DeleteBill"
	BillServiceAttachReceiptProcedure            = "/careshare.v1.BillService/AttachReceipt"
	ReportServiceGetContributionSummaryProcedure = "/careshare.v1.ReportService/GetContributionSummary"
	ReportServiceGetBudgetSnapshotProcedure      = "/careshare.v1.ReportService/GetBudgetSnapshot"
	ReceiptServiceUploadReceiptProcedure         = "/careshare.v1.ReceiptService/UploadReceipt"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(opts, connect.WithCodec(api.JSONCodec{}))
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// AuthServiceHandler is the server side of AuthService, which registers caregiver accounts and issues session tokens.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for every AuthService procedure. It
// returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceClient constructs a client for AuthService. baseURL is the server's
// scheme and host, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register: connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	register *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login    *connect.Client[api.LoginRequest, api.LoginResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// FamilyServiceHandler is the server side of FamilyService, which manages family units, their members and budgets.
type FamilyServiceHandler interface {
	CreateFamily(context.Context, *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error)
	GetFamily(context.Context, *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error)
	ListFamilies(context.Context, *connect.Request[api.ListFamiliesRequest]) (*connect.Response[api.ListFamiliesResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SetMonthlyBudget(context.Context, *connect.Request[api.SetMonthlyBudgetRequest]) (*connect.Response[api.SetMonthlyBudgetResponse], error)
}

// NewFamilyServiceHandler builds an HTTP handler for every FamilyService procedure. It
// returns the path to mount it on.
func NewFamilyServiceHandler(svc FamilyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createFamilyHandler := connect.NewUnaryHandler(FamilyServiceCreateFamilyProcedure, svc.CreateFamily, opts...)
	getFamilyHandler := connect.NewUnaryHandler(FamilyServiceGetFamilyProcedure, svc.GetFamily, opts...)
	listFamiliesHandler := connect.NewUnaryHandler(FamilyServiceListFamiliesProcedure, svc.ListFamilies, opts...)
	addMemberHandler := connect.NewUnaryHandler(FamilyServiceAddMemberProcedure, svc.AddMember, opts...)
	listMembersHandler := connect.NewUnaryHandler(FamilyServiceListMembersProcedure, svc.ListMembers, opts...)
	setMonthlyBudgetHandler := connect.NewUnaryHandler(FamilyServiceSetMonthlyBudgetProcedure, svc.SetMonthlyBudget, opts...)
	return "/" + FamilyServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case FamilyServiceCreateFamilyProcedure:
			createFamilyHandler.ServeHTTP(w, r)
		case FamilyServiceGetFamilyProcedure:
			getFamilyHandler.ServeHTTP(w, r)
		case FamilyServiceListFamiliesProcedure:
			listFamiliesHandler.ServeHTTP(w, r)
		case FamilyServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case FamilyServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case FamilyServiceSetMonthlyBudgetProcedure:
			setMonthlyBudgetHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// FamilyServiceClient is a client for FamilyService.
type FamilyServiceClient interface {
	CreateFamily(context.Context, *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error)
	GetFamily(context.Context, *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error)
	ListFamilies(context.Context, *connect.Request[api.ListFamiliesRequest]) (*connect.Response[api.ListFamiliesResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SetMonthlyBudget(context.Context, *connect.Request[api.SetMonthlyBudgetRequest]) (*connect.Response[api.SetMonthlyBudgetResponse], error)
}

// NewFamilyServiceClient constructs a client for FamilyService. baseURL is the server's
// scheme and host, e.g. http://localhost:8080.
func NewFamilyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FamilyServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &familyServiceClient{
		createFamily:     connect.NewClient[api.CreateFamilyRequest, api.CreateFamilyResponse](httpClient, baseURL+FamilyServiceCreateFamilyProcedure, opts...),
		getFamily:        connect.NewClient[api.GetFamilyRequest, api.GetFamilyResponse](httpClient, baseURL+FamilyServiceGetFamilyProcedure, opts...),
		listFamilies:     connect.NewClient[api.ListFamiliesRequest, api.ListFamiliesResponse](httpClient, baseURL+FamilyServiceListFamiliesProcedure, opts...),
		addMember:        connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+FamilyServiceAddMemberProcedure, opts...),
		listMembers:      connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+FamilyServiceListMembersProcedure, opts...),
		setMonthlyBudget: connect.NewClient[api.SetMonthlyBudgetRequest, api.SetMonthlyBudgetResponse](httpClient, baseURL+FamilyServiceSetMonthlyBudgetProcedure, opts...),
	}
}

type familyServiceClient struct {
	createFamily     *connect.Client[api.CreateFamilyRequest, api.CreateFamilyResponse]
	getFamily        *connect.Client[api.GetFamilyRequest, api.GetFamilyResponse]
	listFamilies     *connect.Client[api.ListFamiliesRequest, api.ListFamiliesResponse]
	addMember        *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	listMembers      *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	setMonthlyBudget *connect.Client[api.SetMonthlyBudgetRequest, api.SetMonthlyBudgetResponse]
}

func (c *familyServiceClient) CreateFamily(ctx context.Context, req *connect.Request[api.CreateFamilyRequest]) (*connect.Response[api.CreateFamilyResponse], error) {
	return c.createFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) GetFamily(ctx context.Context, req *connect.Request[api.GetFamilyRequest]) (*connect.Response[api.GetFamilyResponse], error) {
	return c.getFamily.CallUnary(ctx, req)
}

func (c *familyServiceClient) ListFamilies(ctx context.Context, req *connect.Request[api.ListFamiliesRequest]) (*connect.Response[api.ListFamiliesResponse], error) {
	return c.listFamilies.CallUnary(ctx, req)
}

func (c *familyServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *familyServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *familyServiceClient) SetMonthlyBudget(ctx context.Context, req *connect.Request[api.SetMonthlyBudgetRequest]) (*connect.Response[api.SetMonthlyBudgetResponse], error) {
	return c.setMonthlyBudget.CallUnary(ctx, req)
}

// BillServiceHandler is the server side of BillService, which previews splits and records, pays and deletes bills.
type BillServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	SwitchSplitType(context.Context, *connect.Request[api.SwitchSplitTypeRequest]) (*connect.Response[api.SwitchSplitTypeResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	MarkBillPaid(context.Context, *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.MarkBillPaidResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	AttachReceipt(context.Context, *connect.Request[api.AttachReceiptRequest]) (*connect.Response[api.AttachReceiptResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for every BillService procedure. It
// returns the path to mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	previewSplitHandler := connect.NewUnaryHandler(BillServicePreviewSplitProcedure, svc.PreviewSplit, opts...)
	switchSplitTypeHandler := connect.NewUnaryHandler(BillServiceSwitchSplitTypeProcedure, svc.SwitchSplitType, opts...)
	createBillHandler := connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...)
	getBillHandler := connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...)
	listBillsHandler := connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...)
	markBillPaidHandler := connect.NewUnaryHandler(BillServiceMarkBillPaidProcedure, svc.MarkBillPaid, opts...)
	deleteBillHandler := connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...)
	attachReceiptHandler := connect.NewUnaryHandler(BillServiceAttachReceiptProcedure, svc.AttachReceipt, opts...)
	return "/" + BillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServicePreviewSplitProcedure:
			previewSplitHandler.ServeHTTP(w, r)
		case BillServiceSwitchSplitTypeProcedure:
			switchSplitTypeHandler.ServeHTTP(w, r)
		case BillServiceCreateBillProcedure:
			createBillHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			getBillHandler.ServeHTTP(w, r)
		case BillServiceListBillsProcedure:
			listBillsHandler.ServeHTTP(w, r)
		case BillServiceMarkBillPaidProcedure:
			markBillPaidHandler.ServeHTTP(w, r)
		case BillServiceDeleteBillProcedure:
			deleteBillHandler.ServeHTTP(w, r)
		case BillServiceAttachReceiptProcedure:
			attachReceiptHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillServiceClient is a client for BillService.
type BillServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	SwitchSplitType(context.Context, *connect.Request[api.SwitchSplitTypeRequest]) (*connect.Response[api.SwitchSplitTypeResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	MarkBillPaid(context.Context, *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.MarkBillPaidResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	AttachReceipt(context.Context, *connect.Request[api.AttachReceiptRequest]) (*connect.Response[api.AttachReceiptResponse], error)
}

// NewBillServiceClient constructs a client for BillService. baseURL is the server's
// scheme and host, e.g. http://localhost:8080.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billServiceClient{
		previewSplit:    connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+BillServicePreviewSplitProcedure, opts...),
		switchSplitType: connect.NewClient[api.SwitchSplitTypeRequest, api.SwitchSplitTypeResponse](httpClient, baseURL+BillServiceSwitchSplitTypeProcedure, opts...),
		createBill:      connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:         connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		listBills:       connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		markBillPaid:    connect.NewClient[api.MarkBillPaidRequest, api.MarkBillPaidResponse](httpClient, baseURL+BillServiceMarkBillPaidProcedure, opts...),
		deleteBill:      connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		attachReceipt:   connect.NewClient[api.AttachReceiptRequest, api.AttachReceiptResponse](httpClient, baseURL+BillServiceAttachReceiptProcedure, opts...),
	}
}

type billServiceClient struct {
	previewSplit    *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	switchSplitType *connect.Client[api.SwitchSplitTypeRequest, api.SwitchSplitTypeResponse]
	createBill      *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill         *connect.Client[api.GetBillRequest, api.GetBillResponse]
	listBills       *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	markBillPaid    *connect.Client[api.MarkBillPaidRequest, api.MarkBillPaidResponse]
	deleteBill      *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	attachReceipt   *connect.Client[api.AttachReceiptRequest, api.AttachReceiptResponse]
}

func (c *billServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *billServiceClient) SwitchSplitType(ctx context.Context, req *connect.Request[api.SwitchSplitTypeRequest]) (*connect.Response[api.SwitchSplitTypeResponse], error) {
	return c.switchSplitType.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *billServiceClient) MarkBillPaid(ctx context.Context, req *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.MarkBillPaidResponse], error) {
	return c.markBillPaid.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AttachReceipt(ctx context.Context, req *connect.Request[api.AttachReceiptRequest]) (*connect.Response[api.AttachReceiptResponse], error) {
	return c.attachReceipt.CallUnary(ctx, req)
}

// ReportServiceHandler is the server side of ReportService, which reads contribution summaries and budget snapshots.
type ReportServiceHandler interface {
	GetContributionSummary(context.Context, *connect.Request[api.GetContributionSummaryRequest]) (*connect.Response[api.GetContributionSummaryResponse], error)
	GetBudgetSnapshot(context.Context, *connect.Request[api.GetBudgetSnapshotRequest]) (*connect.Response[api.GetBudgetSnapshotResponse], error)
}

// NewReportServiceHandler builds an HTTP handler for every ReportService procedure. It
// returns the path to mount it on.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getContributionSummaryHandler := connect.NewUnaryHandler(ReportServiceGetContributionSummaryProcedure, svc.GetContributionSummary, opts...)
	getBudgetSnapshotHandler := connect.NewUnaryHandler(ReportServiceGetBudgetSnapshotProcedure, svc.GetBudgetSnapshot, opts...)
	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceGetContributionSummaryProcedure:
			getContributionSummaryHandler.ServeHTTP(w, r)
		case ReportServiceGetBudgetSnapshotProcedure:
			getBudgetSnapshotHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ReportServiceClient is a client for ReportService.
type ReportServiceClient interface {
	GetContributionSummary(context.Context, *connect.Request[api.GetContributionSummaryRequest]) (*connect.Response[api.GetContributionSummaryResponse], error)
	GetBudgetSnapshot(context.Context, *connect.Request[api.GetBudgetSnapshotRequest]) (*connect.Response[api.GetBudgetSnapshotResponse], error)
}

// NewReportServiceClient constructs a client for ReportService. baseURL is the server's
// scheme and host, e.g. http://localhost:8080.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &reportServiceClient{
		getContributionSummary: connect.NewClient[api.GetContributionSummaryRequest, api.GetContributionSummaryResponse](httpClient, baseURL+ReportServiceGetContributionSummaryProcedure, opts...),
		getBudgetSnapshot:      connect.NewClient[api.GetBudgetSnapshotRequest, api.GetBudgetSnapshotResponse](httpClient, baseURL+ReportServiceGetBudgetSnapshotProcedure, opts...),
	}
}

type reportServiceClient struct {
	getContributionSummary *connect.Client[api.GetContributionSummaryRequest, api.GetContributionSummaryResponse]
	getBudgetSnapshot      *connect.Client[api.GetBudgetSnapshotRequest, api.GetBudgetSnapshotResponse]
}

func (c *reportServiceClient) GetContributionSummary(ctx context.Context, req *connect.Request[api.GetContributionSummaryRequest]) (*connect.Response[api.GetContributionSummaryResponse], error) {
	return c.getContributionSummary.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetBudgetSnapshot(ctx context.Context, req *connect.Request[api.GetBudgetSnapshotRequest]) (*connect.Response[api.GetBudgetSnapshotResponse], error) {
	return c.getBudgetSnapshot.CallUnary(ctx, req)
}

// ReceiptServiceHandler is the server side of ReceiptService, which stores receipt files.
type ReceiptServiceHandler interface {
	UploadReceipt(context.Context, *connect.Request[api.UploadReceiptRequest]) (*connect.Response[api.UploadReceiptResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler for every ReceiptService procedure. It
// returns the path to mount it on.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	uploadReceiptHandler := connect.NewUnaryHandler(ReceiptServiceUploadReceiptProcedure, svc.UploadReceipt, opts...)
	return "/" + ReceiptServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReceiptServiceUploadReceiptProcedure:
			uploadReceiptHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ReceiptServiceClient is a client for ReceiptService.
type ReceiptServiceClient interface {
	UploadReceipt(context.Context, *connect.Request[api.UploadReceiptRequest]) (*connect.Response[api.UploadReceiptResponse], error)
}

// NewReceiptServiceClient constructs a client for ReceiptService. baseURL is the server's
// scheme and host, e.g. http://localhost:8080.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &receiptServiceClient{
		uploadReceipt: connect.NewClient[api.UploadReceiptRequest, api.UploadReceiptResponse](httpClient, baseURL+ReceiptServiceUploadReceiptProcedure, opts...),
	}
}

type receiptServiceClient struct {
	uploadReceipt *connect.Client[api.UploadReceiptRequest, api.UploadReceiptResponse]
}

func (c *receiptServiceClient) UploadReceipt(ctx context.Context, req *connect.Request[api.UploadReceiptRequest]) (*connect.Response[api.UploadReceiptResponse], error) {
	return c.uploadReceipt.CallUnary(ctx, req)
}
