package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/export"
	"github.com/mmynk/fairsplit/internal/metrics"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
	"github.com/mmynk/fairsplit/internal/storage"
)

var (
	errUnknownCurrency = errors.New("unknown currency")
	errMissingBackup   = errors.New("backup is required")
	errInvalidDecimals = errors.New("currency decimals out of range")
)

// BillService implements the Connect BillService.
type BillService struct {
	store           storage.Store
	tokens          *auth.JWTManager
	authenticator   auth.Authenticator
	notifier        Notifier
	metrics         *metrics.Metrics
	defaultCurrency money.Currency
	locks           *billLocks
}

// Option configures a BillService.
type Option func(*BillService)

// WithNotifier replaces the default LogNotifier.
func WithNotifier(n Notifier) Option {
	return func(s *BillService) { s.notifier = n }
}

// WithMetrics records settlement and dropped-share metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BillService) { s.metrics = m }
}

// WithDefaultCurrency sets the currency of bills created without one.
func WithDefaultCurrency(c money.Currency) Option {
	return func(s *BillService) { s.defaultCurrency = c }
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, tokens *auth.JWTManager, authenticator auth.Authenticator, opts ...Option) *BillService {
	s := &BillService{
		store:           store,
		tokens:          tokens,
		authenticator:   authenticator,
		notifier:        LogNotifier{},
		defaultCurrency: money.DefaultCurrency(),
		locks:           newBillLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBill stores a new bill and returns a token for it.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[BillTokenResponse], error) {
	c := s.defaultCurrency
	if code := req.Msg.CurrencyCode; code != "" {
		var ok bool
		if c, ok = money.LookupCurrency(code); !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %s", errUnknownCurrency, code))
		}
	}

	bill := models.NewBill(c)
	bill.Title = strings.TrimSpace(req.Msg.Title)
	for _, name := range req.Msg.Participants {
		if err := bill.AddParticipant(strings.TrimSpace(name)); err != nil {
			return nil, toConnectError(err)
		}
	}

	return s.storeNew(ctx, bill, req.Msg.Passcode, "Bill created")
}

// ImportBill stores a bill restored from a JSON backup.
func (s *BillService) ImportBill(ctx context.Context, req *connect.Request[ImportBillRequest]) (*connect.Response[BillTokenResponse], error) {
	if raw := bytes.TrimSpace(req.Msg.Backup); len(raw) == 0 || string(raw) == "null" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingBackup)
	}
	bill, err := export.ReadBackup(bytes.NewReader(req.Msg.Backup))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	bill.Title = strings.TrimSpace(req.Msg.Title)

	return s.storeNew(ctx, bill, req.Msg.Passcode, "Bill imported")
}

func (s *BillService) storeNew(ctx context.Context, bill *models.Bill, passcode, title string) (*connect.Response[BillTokenResponse], error) {
	hash, err := s.authenticator.Protect(passcode)
	if err != nil {
		return nil, toConnectError(err)
	}
	bill.PasscodeHash = hash

	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(bill.ID)
	if err != nil {
		slog.Error("Token generation failed", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.notifier.Notify(ctx, Notification{
		BillID:  bill.ID,
		Title:   title,
		Message: fmt.Sprintf("%q with %d participants and %d items.", bill.Title, len(bill.Participants()), len(bill.Items())),
	})

	return connect.NewResponse(&BillTokenResponse{
		Token: token,
		Bill:  s.view(ctx, bill),
	}), nil
}

// OpenBill checks the passcode of a stored bill and returns a token for it.
func (s *BillService) OpenBill(ctx context.Context, req *connect.Request[OpenBillRequest]) (*connect.Response[BillTokenResponse], error) {
	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.authenticator.Authenticate(bill, req.Msg.Passcode); err != nil {
		slog.Warn("OpenBill rejected", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.tokens.Generate(bill.ID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&BillTokenResponse{
		Token: token,
		Bill:  s.view(ctx, bill),
	}), nil
}

// CalculateSplit computes the split of a bill sent in the request. Nothing is stored.
func (s *BillService) CalculateSplit(ctx context.Context, req *connect.Request[CalculateSplitRequest]) (*connect.Response[BillResponse], error) {
	bill := models.FromRecord(req.Msg.Bill)
	return connect.NewResponse(&BillResponse{Bill: s.view(ctx, bill)}), nil
}

// GetBill returns a stored bill with its split.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&BillResponse{Bill: s.view(ctx, bill)}), nil
}

// AddParticipant adds a participant to a stored bill.
func (s *BillService) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[BillResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		if err := bill.AddParticipant(name); err != nil {
			return Notification{}, err
		}
		return Notification{Title: "Participant added", Message: name + " has been added to the bill."}, nil
	})
}

// RemoveParticipant removes a participant from a stored bill.
func (s *BillService) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[BillResponse], error) {
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		if err := bill.RemoveParticipant(req.Msg.Name); err != nil {
			return Notification{}, err
		}
		return Notification{Title: "Participant removed", Message: req.Msg.Name + " has been removed from the bill."}, nil
	})
}

// AddItem adds an item to a stored bill.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[BillResponse], error) {
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		c := bill.Currency()
		item, err := bill.AddItem(models.NewItem{
			Name:      strings.TrimSpace(req.Msg.Name),
			Price:     money.ParseMoney(req.Msg.Price, c.Places()),
			Payer:     req.Msg.Payer,
			Consumers: req.Msg.Consumers,
		})
		if err != nil {
			return Notification{}, err
		}
		return Notification{
			Title:   "Item added",
			Message: fmt.Sprintf("%s (%s) has been added to the bill.", item.Name, money.Format(item.Price, c)),
		}, nil
	})
}

// EditItem changes the given fields of an item on a stored bill.
func (s *BillService) EditItem(ctx context.Context, req *connect.Request[EditItemRequest]) (*connect.Response[BillResponse], error) {
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		patch := models.ItemPatch{
			Name:      req.Msg.Name,
			Payer:     req.Msg.Payer,
			Consumers: req.Msg.Consumers,
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			patch.Name = &name
		}
		if req.Msg.Price != nil {
			price := money.ParseMoney(*req.Msg.Price, bill.Currency().Places())
			patch.Price = &price
		}

		item, err := bill.EditItem(req.Msg.ItemID, patch)
		if err != nil {
			return Notification{}, err
		}
		return Notification{Title: "Item updated", Message: item.Name + " has been updated."}, nil
	})
}

// RemoveItem removes an item from a stored bill.
func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[BillResponse], error) {
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		item, ok := bill.Item(req.Msg.ItemID)
		if !ok {
			return Notification{}, fmt.Errorf("%w: %s", models.ErrItemNotFound, req.Msg.ItemID)
		}
		if err := bill.RemoveItem(item.ID); err != nil {
			return Notification{}, err
		}
		return Notification{Title: "Item removed", Message: item.Name + " has been removed from the bill."}, nil
	})
}

// SetCurrency changes the currency of a stored bill. Item prices keep their
// decimal value.
func (s *BillService) SetCurrency(ctx context.Context, req *connect.Request[SetCurrencyRequest]) (*connect.Response[BillResponse], error) {
	c, err := currencyFromRequest(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		bill.SetCurrency(c)
		return Notification{Title: "Currency changed", Message: fmt.Sprintf("Amounts are now shown in %s (%s).", c.Name, c.Symbol)}, nil
	})
}

// ClearBill removes every participant and item from a stored bill.
func (s *BillService) ClearBill(ctx context.Context, req *connect.Request[ClearBillRequest]) (*connect.Response[BillResponse], error) {
	return s.mutate(ctx, req.Msg.BillID, func(bill *models.Bill) (Notification, error) {
		bill.Clear()
		return Notification{Title: "All data cleared", Message: "All participants and items have been removed."}, nil
	})
}

// DeleteBill deletes a stored bill.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	unlock := s.locks.lock(req.Msg.BillID)
	defer unlock()

	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	s.notifier.Notify(ctx, Notification{BillID: req.Msg.BillID, Title: "Bill deleted"})
	return connect.NewResponse(&DeleteBillResponse{}), nil
}

// mutate loads a bill, applies fn and stores the result, holding the bill's
// lock throughout.
func (s *BillService) mutate(ctx context.Context, billID string, fn func(*models.Bill) (Notification, error)) (*connect.Response[BillResponse], error) {
	unlock := s.locks.lock(billID)
	defer unlock()

	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		slog.Error("Failed to load bill", "bill_id", billID, "error", err)
		return nil, toConnectError(err)
	}

	n, err := fn(bill)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		slog.Error("UpdateBill failed", "bill_id", billID, "error", err)
		return nil, toConnectError(err)
	}

	n.BillID = billID
	s.notifier.Notify(ctx, n)
	return connect.NewResponse(&BillResponse{Bill: s.view(ctx, bill)}), nil
}

// view computes the split of bill, reporting dropped shares and the size of
// the settlement plan.
func (s *BillService) view(ctx context.Context, bill *models.Bill) *BillView {
	sp := computeSplit(bill)

	for _, d := range sp.dangling {
		slog.WarnContext(ctx, "Amount left out for removed participant",
			"bill_id", bill.ID,
			"item", d.ItemName,
			"participant", d.Participant,
			"role", d.Role,
			"amount", money.Format(d.Amount, bill.Currency()),
		)
		if s.metrics != nil {
			s.metrics.DroppedShares.WithLabelValues(string(d.Role)).Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.Transfers.Observe(float64(len(sp.transfers)))
	}

	return toBillView(bill, sp)
}

func currencyFromRequest(req *SetCurrencyRequest) (money.Currency, error) {
	if c, ok := money.LookupCurrency(req.Code); ok {
		return c, nil
	}
	if strings.TrimSpace(req.Code) == "" || req.Symbol == "" {
		return money.Currency{}, fmt.Errorf("%w: %q", errUnknownCurrency, req.Code)
	}
	c := money.Currency{Code: req.Code, Symbol: req.Symbol, Name: req.Name}
	if req.Decimals != nil {
		if d := *req.Decimals; d < 0 || d > money.MaxDecimals {
			return money.Currency{}, fmt.Errorf("%w: %d (want 0 to %d)", errInvalidDecimals, d, money.MaxDecimals)
		}
		c.Decimals = *req.Decimals
	}
	c.Decimals = c.Places()
	return c, nil
}

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, models.ErrParticipantNotFound),
		errors.Is(err, models.ErrItemNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrDuplicateParticipant):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, models.ErrInvalidParticipant),
		errors.Is(err, models.ErrInvalidItem),
		errors.Is(err, auth.ErrWeakPasscode):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidPasscode):
		return connect.NewError(connect.CodePermissionDenied, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
