package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/qikpos/pos-platform/internal/errors"
	"github.com/qikpos/pos-platform/internal/metrics"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// SettlementService turns a cart into a ledger entry and applies every side
// effect of the sale: stock decrements, loyalty accrual, spend totals, and
// store-credit movement. The repository persists the whole record set in one
// transaction.
type SettlementService struct {
	settlementRepo repository.SettlementRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	settingsRepo   repository.SettingsRepository
}

func NewSettlementService(settlementRepo repository.SettlementRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, settingsRepo repository.SettingsRepository) *SettlementService {
	return &SettlementService{
		settlementRepo: settlementRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		settingsRepo:   settingsRepo,
	}
}

const walkInCustomerName = "Walk-in"

func (s *SettlementService) CompleteSale(ctx context.Context, req *models.CompleteSaleRequest) (*models.Transaction, error) {
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, errors.BadRequestError("Unknown payment method: " + string(req.PaymentMethod))
	}

	if len(req.Items) == 0 {
		return nil, errors.BadRequestError("Cannot complete a sale with an empty cart")
	}

	taxRate, err := s.taxRate(ctx)
	if err != nil {
		return nil, err
	}

	// Build line item snapshots and collect the products whose stock moves.
	// A product appearing on several lines is decremented once, by the sum.
	items := make([]models.LineItem, 0, len(req.Items))
	touched := make(map[string]*models.Product)

	var subtotal float64

	for _, line := range req.Items {
		product, ok := touched[line.ProductID]
		if !ok {
			product, err = s.productRepo.GetProductByID(ctx, line.ProductID)
			if err != nil {
				if err == repository.ErrNotFound {
					return nil, errors.NotFoundError("Product not found: " + line.ProductID)
				}

				return nil, errors.DatabaseError("Failed to load product").WithError(err)
			}

			touched[line.ProductID] = product
		}

		items = append(items, models.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			SKU:       product.SKU,
			Price:     product.Price,
			Cost:      product.Cost,
			Quantity:  line.Quantity,
		})

		subtotal += product.Price * float64(line.Quantity)

		// Oversell is permitted; stock floors at zero rather than blocking
		// the sale at the counter.
		product.Stock = max(product.Stock-line.Quantity, 0)
	}

	tax := subtotal * taxRate
	total := subtotal + tax

	var customer *models.Customer

	if req.CustomerID != "" {
		customer, err = s.customerRepo.GetCustomerByID(ctx, req.CustomerID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, errors.NotFoundError("Customer not found: " + req.CustomerID)
			}

			return nil, errors.DatabaseError("Failed to load customer").WithError(err)
		}
	}

	if req.PaymentMethod == models.PaymentMethodCredit {
		if customer == nil {
			return nil, errors.BadRequestError("Credit sales require a customer")
		}

		if available := customer.AvailableCredit(); total > available {
			return nil, errors.CreditLimitExceededError(available)
		}
	}

	customerName := walkInCustomerName

	if customer != nil {
		customerName = customer.FullName()

		customer.TotalSpent += total
		// 1 point per currency unit
		customer.LoyaltyPoints += int(math.Floor(total))

		if req.PaymentMethod == models.PaymentMethodCredit {
			customer.CurrentCredit += total
		}
	}

	now := time.Now().UTC()

	txn := &models.Transaction{
		ID:            newSaleID(now),
		Type:          models.TransactionTypeSale,
		Date:          now,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  customerName,
	}
	if customer != nil {
		txn.CustomerID = customer.ID
	}

	products := make([]*models.Product, 0, len(touched))
	for _, p := range touched {
		products = append(products, p)
	}

	if err := s.settlementRepo.SaveSettlement(ctx, txn, products, customer); err != nil {
		return nil, errors.DatabaseError("Failed to record sale").WithError(err)
	}

	metrics.RecordSale(string(txn.PaymentMethod), txn.Total)

	return txn, nil
}

// ApplyDebtPayment records a cash payment against a customer's store credit
// balance. The payment lands in the same ledger as sales, with no line items.
func (s *SettlementService) ApplyDebtPayment(ctx context.Context, customerID string, req *models.DebtPaymentRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errors.BadRequestError("Payment amount must be positive")
	}

	customer, err := s.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Customer not found: " + customerID)
		}

		return nil, errors.DatabaseError("Failed to load customer").WithError(err)
	}

	// Overpaying clears the debt; the balance never goes negative.
	customer.CurrentCredit = math.Max(0, customer.CurrentCredit-req.Amount)

	now := time.Now().UTC()

	txn := &models.Transaction{
		ID:            fmt.Sprintf("PAY-%d", now.UnixMilli()),
		Type:          models.TransactionTypePayment,
		Date:          now,
		Items:         []models.LineItem{},
		Subtotal:      0,
		Tax:           0,
		Total:         req.Amount,
		PaymentMethod: models.PaymentMethodCash,
		CustomerID:    customer.ID,
		CustomerName:  customer.FullName(),
	}

	if err := s.settlementRepo.SaveSettlement(ctx, txn, nil, customer); err != nil {
		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	return txn, nil
}

func (s *SettlementService) taxRate(ctx context.Context) (float64, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return models.DefaultStoreSettings().TaxRate, nil
		}

		return 0, errors.DatabaseError("Failed to load store settings").WithError(err)
	}

	return settings.TaxRate, nil
}

// newSaleID keeps the short receipt-friendly format: the last six digits of
// the millisecond clock.
func newSaleID(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())

	return "TXN-" + millis[len(millis)-6:]
}
