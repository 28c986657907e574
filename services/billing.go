package services

import (
	"fmt"
	"time"

	"github.com/Lebronlang/Boardify/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Billing rates. The penalty accrues at a flat 20 per day past due; paying on
// or before the due date earns a 5% discount, and the platform takes a 5%
// commission of the settled total.
var (
	penaltyPerDay  = decimal.NewFromInt(20)
	discountRate   = decimal.RequireFromString("0.05")
	commissionRate = decimal.RequireFromString("0.05")
)

// BillingService computes and refreshes penalty, discount and commission
// fields and settles bills. Amount is never rewritten after creation.
type BillingService struct {
	db       *gorm.DB
	notifier Notifier
	clock    func() time.Time
}

func NewBillingService(db *gorm.DB, notifier Notifier) *BillingService {
	return &BillingService{db: db, notifier: notifier, clock: time.Now}
}

// PaymentReceipt is returned from Pay with the figures the payer saw.
type PaymentReceipt struct {
	Bill        *models.Bill    `json:"bill"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	Commission  decimal.Decimal `json:"commission"`
}

// Refresh recomputes penalty, discount and status from the due date and the
// current day. It is idempotent: repeated calls without time passing yield
// identical values.
func (s *BillingService) Refresh(billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := s.refreshFields(&bill, truncateToDate(s.clock()))
	if len(updates) > 0 {
		if err := s.db.Model(&models.Bill{}).Where("id = ?", bill.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &bill, nil
}

// refreshFields applies the timing rules to the in-memory bill and returns
// the column updates to persist. Amount is deliberately absent.
func (s *BillingService) refreshFields(bill *models.Bill, today time.Time) map[string]interface{} {
	updates := map[string]interface{}{}

	switch bill.Status {
	case models.BillStatusPaid:
		discount := decimal.Zero
		if bill.PaymentDate != nil && !truncateToDate(*bill.PaymentDate).After(truncateToDate(bill.DueDate)) {
			discount = bill.Amount.Mul(discountRate)
		}
		if !bill.Discount.Equal(discount) {
			bill.Discount = discount
			updates["discount"] = discount
		}

	case models.BillStatusUnpaid, models.BillStatusOverdue:
		penalty := decimal.Zero
		status := bill.Status
		if today.After(truncateToDate(bill.DueDate)) {
			daysLate := daysBetween(bill.DueDate, today)
			penalty = penaltyPerDay.Mul(decimal.NewFromInt(int64(daysLate)))
			status = models.BillStatusOverdue
		}
		if !bill.Penalty.Equal(penalty) {
			bill.Penalty = penalty
			updates["penalty"] = penalty
		}
		if bill.Status != status {
			bill.Status = status
			updates["status"] = status
		}
	}

	return updates
}

// Pay settles a bill exactly once. Discount and penalty are fixed at the
// moment of payment relative to the due date, and the platform commission is
// taken from the settled total. Tenants may pay their own bills, landlords
// bills on their own properties, admins any.
func (s *BillingService) Pay(billID, actorID uint, role, method string) (*PaymentReceipt, error) {
	if method == "" {
		return nil, ErrMissingPaymentMethod
	}

	var receipt PaymentReceipt
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := lockForUpdate(tx).First(&bill, billID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if bill.Status == models.BillStatusPaid {
			return ErrPaidAlready
		}
		if err := s.authorizePayment(tx, &bill, actorID, role); err != nil {
			return err
		}

		previousStatus := bill.Status
		today := truncateToDate(s.clock())
		due := truncateToDate(bill.DueDate)
		discount := decimal.Zero
		penalty := decimal.Zero
		if today.After(due) {
			daysLate := daysBetween(due, today)
			penalty = penaltyPerDay.Mul(decimal.NewFromInt(int64(daysLate)))
		} else {
			discount = bill.Amount.Mul(discountRate)
		}

		months := bill.Months
		if months < 1 {
			months = 1
		}
		finalAmount := bill.Amount.Mul(decimal.NewFromInt(int64(months))).Add(penalty).Sub(discount)
		commission := finalAmount.Mul(commissionRate)

		bill.Status = models.BillStatusPaid
		bill.Penalty = penalty
		bill.Discount = discount
		bill.AdminCommission = commission
		bill.PaymentDate = &today
		bill.PaymentMethod = method
		bill.ReceiptNumber = uuid.NewString()

		if err := tx.Model(&models.Bill{}).Where("id = ?", bill.ID).Updates(map[string]interface{}{
			"status":           bill.Status,
			"penalty":          bill.Penalty,
			"discount":         bill.Discount,
			"admin_commission": bill.AdminCommission,
			"payment_date":     bill.PaymentDate,
			"payment_method":   bill.PaymentMethod,
			"receipt_number":   bill.ReceiptNumber,
		}).Error; err != nil {
			return err
		}

		if err := recordAudit(tx, actorID, "bill_paid", "bill", bill.ID,
			map[string]string{"status": previousStatus},
			map[string]string{"status": models.BillStatusPaid, "method": method}); err != nil {
			return err
		}

		receipt = PaymentReceipt{Bill: &bill, FinalAmount: finalAmount, Commission: commission}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var property models.Property
	if err := s.db.First(&property, receipt.Bill.PropertyID).Error; err == nil {
		s.notifier.Notify(models.Notification{
			UserID:  property.LandlordID,
			Title:   "Bill Paid",
			Message: fmt.Sprintf("Bill %d on %s settled for %s via %s", receipt.Bill.ID, property.Title, receipt.FinalAmount.StringFixed(2), method),
			Type:    models.NotificationBillPaid,
			RefID:   receipt.Bill.ID,
			RefType: "bill",
		})
	}

	return &receipt, nil
}

func (s *BillingService) authorizePayment(tx *gorm.DB, bill *models.Bill, actorID uint, role string) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleTenant:
		if bill.TenantID != actorID {
			return ErrUnauthorized
		}
		return nil
	case models.RoleLandlord:
		var property models.Property
		if err := tx.First(&property, bill.PropertyID).Error; err != nil {
			return err
		}
		if property.LandlordID != actorID {
			return ErrUnauthorized
		}
		return nil
	default:
		return ErrUnauthorized
	}
}

// ListForUser returns the bills visible to a user, refreshed on view the way
// the billing page does: tenants see their own, landlords every bill on their
// properties.
func (s *BillingService) ListForUser(userID uint, role string) ([]models.Bill, error) {
	var bills []models.Bill
	q := s.db.Preload("Property").Order("due_date ASC")
	if role == models.RoleLandlord {
		q = q.Joins("JOIN properties p ON p.id = bills.property_id").
			Where("p.landlord_id = ?", userID)
	} else {
		q = q.Where("tenant_id = ?", userID)
	}
	if err := q.Find(&bills).Error; err != nil {
		return nil, err
	}

	today := truncateToDate(s.clock())
	for i := range bills {
		updates := s.refreshFields(&bills[i], today)
		if len(updates) > 0 {
			if err := s.db.Model(&models.Bill{}).Where("id = ?", bills[i].ID).
				Updates(updates).Error; err != nil {
				return nil, err
			}
		}
	}
	return bills, nil
}

// InvoiceSummary aggregates a month of bills.
type InvoiceSummary struct {
	Bills         []models.Bill   `json:"bills"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalPenalty  decimal.Decimal `json:"totalPenalty"`
}

// MonthlyInvoice sums the bills due in the given month for a tenant or across
// a landlord's properties.
func (s *BillingService) MonthlyInvoice(userID uint, role string, year int, month time.Month) (*InvoiceSummary, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var bills []models.Bill
	q := s.db.Preload("Property").
		Where("bills.due_date >= ? AND bills.due_date < ?", first, next)
	if role == models.RoleLandlord {
		q = q.Joins("JOIN properties p ON p.id = bills.property_id").
			Where("p.landlord_id = ?", userID)
	} else {
		q = q.Where("bills.tenant_id = ?", userID)
	}
	if err := q.Find(&bills).Error; err != nil {
		return nil, err
	}

	summary := InvoiceSummary{
		Bills:         bills,
		TotalAmount:   decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalPenalty:  decimal.Zero,
	}
	today := truncateToDate(s.clock())
	for i := range bills {
		s.refreshFields(&bills[i], today)
		summary.TotalAmount = summary.TotalAmount.Add(bills[i].Amount)
		summary.TotalDiscount = summary.TotalDiscount.Add(bills[i].Discount)
		summary.TotalPenalty = summary.TotalPenalty.Add(bills[i].Penalty)
	}
	return &summary, nil
}

// CommissionSummary is the admin dashboard view of platform earnings.
type CommissionSummary struct {
	TotalCommission   decimal.Decimal `json:"totalCommission"`
	PendingCommission decimal.Decimal `json:"pendingCommission"`
	PaidBills         []models.Bill   `json:"paidBills"`
	PropertiesCount   int64           `json:"propertiesCount"`
	TenantsCount      int64           `json:"tenantsCount"`
}

// Commissions totals collected commission over settled bills and projects the
// platform cut over bills still outstanding.
func (s *BillingService) Commissions() (*CommissionSummary, error) {
	var paid []models.Bill
	if err := s.db.Preload("Property").
		Where("status = ?", models.BillStatusPaid).
		Find(&paid).Error; err != nil {
		return nil, err
	}

	summary := CommissionSummary{
		TotalCommission:   decimal.Zero,
		PendingCommission: decimal.Zero,
		PaidBills:         paid,
	}
	for i := range paid {
		summary.TotalCommission = summary.TotalCommission.Add(paid[i].AdminCommission)
	}

	var unpaid []models.Bill
	if err := s.db.
		Where("status IN ?", []string{models.BillStatusUnpaid, models.BillStatusOverdue}).
		Find(&unpaid).Error; err != nil {
		return nil, err
	}
	for i := range unpaid {
		summary.PendingCommission = summary.PendingCommission.Add(unpaid[i].Amount.Mul(commissionRate))
	}

	if err := s.db.Model(&models.Property{}).Count(&summary.PropertiesCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleTenant).
		Count(&summary.TenantsCount).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
