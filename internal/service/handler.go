package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the BillService.
const BillServiceName = "fairsplit.v1.BillService"

// Procedure paths of the BillService RPCs.
const (
	CreateBillProcedure        = "/fairsplit.v1.BillService/CreateBill"
	OpenBillProcedure          = "/fairsplit.v1.BillService/OpenBill"
	ImportBillProcedure        = "/fairsplit.v1.BillService/ImportBill"
	CalculateSplitProcedure    = "/fairsplit.v1.BillService/CalculateSplit"
	GetBillProcedure           = "/fairsplit.v1.BillService/GetBill"
	AddParticipantProcedure    = "/fairsplit.v1.BillService/AddParticipant"
	RemoveParticipantProcedure = "/fairsplit.v1.BillService/RemoveParticipant"
	AddItemProcedure           = "/fairsplit.v1.BillService/AddItem"
	EditItemProcedure          = "/fairsplit.v1.BillService/EditItem"
	RemoveItemProcedure        = "/fairsplit.v1.BillService/RemoveItem"
	SetCurrencyProcedure       = "/fairsplit.v1.BillService/SetCurrency"
	ClearBillProcedure         = "/fairsplit.v1.BillService/ClearBill"
	DeleteBillProcedure        = "/fairsplit.v1.BillService/DeleteBill"
)

// NewBillServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateBillProcedure, connect.NewUnaryHandler(CreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(OpenBillProcedure, connect.NewUnaryHandler(OpenBillProcedure, svc.OpenBill, opts...))
	mux.Handle(ImportBillProcedure, connect.NewUnaryHandler(ImportBillProcedure, svc.ImportBill, opts...))
	mux.Handle(CalculateSplitProcedure, connect.NewUnaryHandler(CalculateSplitProcedure, svc.CalculateSplit, opts...))
	mux.Handle(GetBillProcedure, connect.NewUnaryHandler(GetBillProcedure, svc.GetBill, opts...))
	mux.Handle(AddParticipantProcedure, connect.NewUnaryHandler(AddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(RemoveParticipantProcedure, connect.NewUnaryHandler(RemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	mux.Handle(AddItemProcedure, connect.NewUnaryHandler(AddItemProcedure, svc.AddItem, opts...))
	mux.Handle(EditItemProcedure, connect.NewUnaryHandler(EditItemProcedure, svc.EditItem, opts...))
	mux.Handle(RemoveItemProcedure, connect.NewUnaryHandler(RemoveItemProcedure, svc.RemoveItem, opts...))
	mux.Handle(SetCurrencyProcedure, connect.NewUnaryHandler(SetCurrencyProcedure, svc.SetCurrency, opts...))
	mux.Handle(ClearBillProcedure, connect.NewUnaryHandler(ClearBillProcedure, svc.ClearBill, opts...))
	mux.Handle(DeleteBillProcedure, connect.NewUnaryHandler(DeleteBillProcedure, svc.DeleteBill, opts...))

	return "/" + BillServiceName + "/", mux
}

// BillServiceClient is a client for the BillService.
type BillServiceClient struct {
	createBill        *connect.Client[CreateBillRequest, BillTokenResponse]
	openBill          *connect.Client[OpenBillRequest, BillTokenResponse]
	importBill        *connect.Client[ImportBillRequest, BillTokenResponse]
	calculateSplit    *connect.Client[CalculateSplitRequest, BillResponse]
	getBill           *connect.Client[GetBillRequest, BillResponse]
	addParticipant    *connect.Client[AddParticipantRequest, BillResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, BillResponse]
	addItem           *connect.Client[AddItemRequest, BillResponse]
	editItem          *connect.Client[EditItemRequest, BillResponse]
	removeItem        *connect.Client[RemoveItemRequest, BillResponse]
	setCurrency       *connect.Client[SetCurrencyRequest, BillResponse]
	clearBill         *connect.Client[ClearBillRequest, BillResponse]
	deleteBill        *connect.Client[DeleteBillRequest, DeleteBillResponse]
}

// NewBillServiceClient constructs a client for the BillService served at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &BillServiceClient{
		createBill:        connect.NewClient[CreateBillRequest, BillTokenResponse](httpClient, baseURL+CreateBillProcedure, opts...),
		openBill:          connect.NewClient[OpenBillRequest, BillTokenResponse](httpClient, baseURL+OpenBillProcedure, opts...),
		importBill:        connect.NewClient[ImportBillRequest, BillTokenResponse](httpClient, baseURL+ImportBillProcedure, opts...),
		calculateSplit:    connect.NewClient[CalculateSplitRequest, BillResponse](httpClient, baseURL+CalculateSplitProcedure, opts...),
		getBill:           connect.NewClient[GetBillRequest, BillResponse](httpClient, baseURL+GetBillProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, BillResponse](httpClient, baseURL+AddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, BillResponse](httpClient, baseURL+RemoveParticipantProcedure, opts...),
		addItem:           connect.NewClient[AddItemRequest, BillResponse](httpClient, baseURL+AddItemProcedure, opts...),
		editItem:          connect.NewClient[EditItemRequest, BillResponse](httpClient, baseURL+EditItemProcedure, opts...),
		removeItem:        connect.NewClient[RemoveItemRequest, BillResponse](httpClient, baseURL+RemoveItemProcedure, opts...),
		setCurrency:       connect.NewClient[SetCurrencyRequest, BillResponse](httpClient, baseURL+SetCurrencyProcedure, opts...),
		clearBill:         connect.NewClient[ClearBillRequest, BillResponse](httpClient, baseURL+ClearBillProcedure, opts...),
		deleteBill:        connect.NewClient[DeleteBillRequest, DeleteBillResponse](httpClient, baseURL+DeleteBillProcedure, opts...),
	}
}

func (c *BillServiceClient) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[BillTokenResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) OpenBill(ctx context.Context, req *connect.Request[OpenBillRequest]) (*connect.Response[BillTokenResponse], error) {
	return c.openBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ImportBill(ctx context.Context, req *connect.Request[ImportBillRequest]) (*connect.Response[BillTokenResponse], error) {
	return c.importBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[CalculateSplitRequest]) (*connect.Response[BillResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[BillResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *BillServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[BillResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *BillServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *BillServiceClient) EditItem(ctx context.Context, req *connect.Request[EditItemRequest]) (*connect.Response[BillResponse], error) {
	return c.editItem.CallUnary(ctx, req)
}

func (c *BillServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *BillServiceClient) SetCurrency(ctx context.Context, req *connect.Request[SetCurrencyRequest]) (*connect.Response[BillResponse], error) {
	return c.setCurrency.CallUnary(ctx, req)
}

func (c *BillServiceClient) ClearBill(ctx context.Context, req *connect.Request[ClearBillRequest]) (*connect.Response[BillResponse], error) {
	return c.clearBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}
