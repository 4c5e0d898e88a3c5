package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/checkout"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/email"
	"github.com/yigit/javamaster/internal/pkg/gateway"
	"github.com/yigit/javamaster/internal/pkg/helpers"
	"github.com/yigit/javamaster/internal/pkg/metrics"
	"github.com/yigit/javamaster/internal/pkg/validation"
)

// ReceiptDir is the storage sub-directory holding order receipts
const ReceiptDir = "receipts"

// CheckoutConfig holds the merchant settings shown in the payment widget
type CheckoutConfig struct {
	Currency     string
	MerchantName string
	ConfirmURL   string
}

// CheckoutService runs the order creation flow
type CheckoutService struct {
	courses   CourseStore
	orders    OrderStore
	attempts  CheckoutAttemptStore
	gateway   gateway.PaymentGateway
	mailer    email.EmailService
	receipts  ReceiptStore
	publisher OrderPublisher
	config    CheckoutConfig
	logger    zerolog.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	courses CourseStore,
	orders OrderStore,
	attempts CheckoutAttemptStore,
	paymentGateway gateway.PaymentGateway,
	mailer email.EmailService,
	receipts ReceiptStore,
	publisher OrderPublisher,
	config CheckoutConfig,
	logger zerolog.Logger,
) *CheckoutService {
	if config.Currency == "" {
		config.Currency = "INR"
	}
	if config.ConfirmURL == "" {
		config.ConfirmURL = "/checkout/confirm"
	}
	return &CheckoutService{
		courses:   courses,
		orders:    orders,
		attempts:  attempts,
		gateway:   paymentGateway,
		mailer:    mailer,
		receipts:  receipts,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

// Form returns the checkout page model, prefilled from the student's profile
func (s *CheckoutService) Form(ctx context.Context, student *models.Student, courseID uuid.UUID) (*dto.CheckoutFormResponse, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutFormResponse{
		Course: dto.FromCourse(course),
		Prefill: dto.CheckoutRequest{
			FullName:     student.FullName,
			Email:        student.Email,
			MobileNumber: student.MobileNumber,
			CollegeName:  student.CollegeName,
			Year:         student.Year,
		},
		YearOptions: models.YearOptions,
	}, nil
}

// Start moves a new attempt from Idle to AwaitingPaymentConfirmation: it
// validates the form, rejects full courses, creates the gateway order for the
// discounted price and persists the attempt.
func (s *CheckoutService) Start(ctx context.Context, student *models.Student, courseID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	flow := checkout.NewFlow()

	if err := validation.Struct(req); err != nil {
		s.fail(flow, checkout.ReasonValidation)
		return nil, err
	}
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		s.fail(flow, checkout.ReasonFor(err))
		return nil, err
	}

	if err := flow.Advance(checkout.AwaitingGatewayOrder); err != nil {
		return nil, err
	}
	metrics.CheckoutStarted()

	if course.IsFull() {
		s.fail(flow, checkout.ReasonCapacityExceeded)
		return nil, apperrors.NewCustomError(apperrors.ErrCapacityExceeded, "this batch is full")
	}

	amount := course.DiscountedPrice
	minor, err := helpers.ToMinorUnits(amount)
	if err != nil {
		s.fail(flow, checkout.ReasonService)
		return nil, apperrors.NewServiceError(err, "course price is invalid")
	}

	receipt := gateway.NewReceiptID()
	gwOrder, err := s.gateway.CreateOrder(ctx, minor, s.config.Currency, receipt)
	if err != nil {
		s.fail(flow, checkout.ReasonGatewayOrder)
		return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrGatewayOrder, err), "could not start the payment, please try again")
	}
	if gwOrder.Amount != minor {
		s.fail(flow, checkout.ReasonGatewayOrder)
		s.logger.Error().
			Str("gatewayOrderID", gwOrder.ID).
			Int64("requested", minor).
			Int64("returned", gwOrder.Amount).
			Msg("Gateway order amount mismatch")
		return nil, apperrors.NewCustomError(apperrors.ErrGatewayOrder, "payment amount mismatch")
	}

	if err := flow.Advance(checkout.AwaitingPaymentConfirmation); err != nil {
		return nil, err
	}

	attempt := &models.CheckoutAttempt{
		StudentID:      student.ID,
		CourseID:       course.ID,
		GatewayOrderID: gwOrder.ID,
		Amount:         amount,
		Currency:       s.config.Currency,
		Receipt:        receipt,
		State:          string(flow.State()),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		s.fail(flow, checkout.ReasonService)
		return nil, apperrors.NewServiceError(err, "could not start checkout")
	}

	s.logger.Info().
		Str("attemptID", attempt.ID.String()).
		Str("studentID", student.ID.String()).
		Str("courseID", course.ID.String()).
		Str("gatewayOrderID", gwOrder.ID).
		Msg("Checkout awaiting payment")

	return &dto.CheckoutSessionResponse{
		AttemptID:      attempt.ID.String(),
		State:          attempt.State,
		KeyID:          s.gateway.KeyID(),
		GatewayOrderID: gwOrder.ID,
		Amount:         minor,
		Currency:       s.config.Currency,
		Name:           s.config.MerchantName,
		Description:    course.Title,
		Prefill: dto.PaymentPrefill{
			Name:    req.FullName,
			Email:   req.Email,
			Contact: req.MobileNumber,
		},
		ConfirmURL: s.config.ConfirmURL,
	}, nil
}

// Confirm handles the widget completion callback. It verifies the signature,
// then records the order and reserves the seat in one transaction. Confirming
// a payment token that was already recorded returns the existing order.
func (s *CheckoutService) Confirm(ctx context.Context, student *models.Student, req dto.ConfirmPaymentRequest) (*models.Order, error) {
	existing, err := s.orders.GetByTransactionID(ctx, req.PaymentID)
	switch {
	case err == nil:
		if existing.StudentID != student.ID {
			return nil, apperrors.ErrOrderNotFound
		}
		return existing, nil
	case !errors.Is(err, apperrors.ErrOrderNotFound):
		return nil, apperrors.NewServiceError(err, "could not confirm payment")
	}

	attempt, err := s.attempts.GetByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCheckoutNotFound) {
			return nil, err
		}
		return nil, apperrors.NewServiceError(err, "could not confirm payment")
	}
	if attempt.StudentID != student.ID {
		return nil, apperrors.ErrCheckoutNotFound
	}

	flow, err := checkout.Restore(attempt.State, attempt.FailureReason)
	if err != nil {
		return nil, apperrors.NewServiceError(err, "could not confirm payment")
	}
	if flow.State() != checkout.AwaitingPaymentConfirmation {
		return nil, apperrors.NewCustomError(apperrors.ErrCheckoutAlreadyClosed, "this checkout is no longer open")
	}

	// A bad signature leaves the attempt open; the genuine callback may still arrive.
	if !s.gateway.VerifyPayment(req.GatewayOrderID, req.PaymentID, req.Signature) {
		metrics.CheckoutFailed(string(checkout.ReasonPaymentVerification))
		s.logger.Warn().
			Str("gatewayOrderID", req.GatewayOrderID).
			Str("paymentID", req.PaymentID).
			Msg("Payment signature verification failed")
		return nil, apperrors.NewCustomError(apperrors.ErrPaymentVerification, "payment could not be verified")
	}

	if err := flow.Advance(checkout.RecordingOrder); err != nil {
		return nil, err
	}
	s.saveState(ctx, attempt, flow)

	order := &models.Order{
		StudentID:      student.ID,
		CourseID:       attempt.CourseID,
		AmountPaid:     attempt.Amount,
		TransactionID:  req.PaymentID,
		GatewayOrderID: req.GatewayOrderID,
		PaymentStatus:  models.PaymentStatusCompleted,
	}

	if err := s.orders.RecordWithSeat(ctx, order); err != nil {
		return s.recordFailed(ctx, attempt, flow, order, err)
	}

	if err := flow.Advance(checkout.Completed); err != nil {
		return nil, err
	}
	s.saveState(ctx, attempt, flow)
	metrics.CheckoutCompleted()

	course, err := s.courses.GetByID(ctx, order.CourseID)
	if err != nil {
		s.logger.Warn().Err(err).Str("courseID", order.CourseID.String()).Msg("Could not load course for completed order")
	} else {
		order.Course = course
	}

	s.logger.Info().
		Str("orderID", order.ID.String()).
		Str("transactionID", order.TransactionID).
		Str("studentID", student.ID.String()).
		Msg("Order recorded")

	s.afterCompletion(ctx, order, student)
	return order, nil
}

// recordFailed handles a failed insert. The payment has already been taken, so
// every branch that does not return an order is logged for reconciliation.
func (s *CheckoutService) recordFailed(ctx context.Context, attempt *models.CheckoutAttempt, flow *checkout.Flow, order *models.Order, err error) (*models.Order, error) {
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		// a concurrent confirmation of the same token won the insert
		existing, getErr := s.orders.GetByTransactionID(ctx, order.TransactionID)
		if getErr == nil {
			return existing, nil
		}
		err = getErr
	}

	reason := checkout.ReasonPersist
	if errors.Is(err, apperrors.ErrCapacityExceeded) {
		reason = checkout.ReasonCapacityExceeded
	}
	s.fail(flow, reason)
	s.saveState(ctx, attempt, flow)

	s.logger.Error().
		Err(err).
		Str("reason", string(reason)).
		Str("transactionID", order.TransactionID).
		Str("gatewayOrderID", order.GatewayOrderID).
		Str("studentID", order.StudentID.String()).
		Str("courseID", order.CourseID.String()).
		Str("amount", order.AmountPaid.StringFixed(2)).
		Msg("Payment captured but order not recorded, reconcile manually")

	if reason == checkout.ReasonCapacityExceeded {
		return nil, apperrors.NewCustomError(apperrors.ErrCapacityExceeded,
			"the batch filled up before your payment was recorded; our team will contact you about a refund")
	}
	return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrPersist, err),
		"your payment was received but the order could not be saved; our team will contact you")
}

// afterCompletion writes the receipt, sends the confirmation email and notifies
// admins. Failures are logged only.
func (s *CheckoutService) afterCompletion(ctx context.Context, order *models.Order, student *models.Student) {
	receiptURL := ""
	if page, err := renderReceipt(order, student); err != nil {
		s.logger.Warn().Err(err).Str("transactionID", order.TransactionID).Msg("Failed to render receipt")
	} else if url, err := s.receipts.SaveBytes(ReceiptDir, order.TransactionID+".html", page); err != nil {
		s.logger.Warn().Err(err).Str("transactionID", order.TransactionID).Msg("Failed to store receipt")
	} else {
		receiptURL = url
	}

	mail := email.OrderReceipt{
		Amount:        order.AmountPaid.StringFixed(2),
		TransactionID: order.TransactionID,
		PurchaseDate:  order.PurchaseDate,
		ReceiptURL:    receiptURL,
	}
	if order.Course != nil {
		mail.CourseTitle = order.Course.Title
		mail.BatchStartDate = order.Course.BatchStartDate
	}
	if err := s.mailer.SendOrderConfirmation(ctx, student.Email, student.FullName, mail); err != nil {
		s.logger.Warn().Err(err).Str("transactionID", order.TransactionID).Msg("Order confirmation email failed")
	}

	s.publisher.PublishOrder(order, order.Course, student)
}

func (s *CheckoutService) loadCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, apperrors.NewServiceError(err, "could not load course")
	}
	return course, nil
}

func (s *CheckoutService) fail(flow *checkout.Flow, reason checkout.Reason) {
	if err := flow.Fail(reason); err != nil {
		s.logger.Warn().Err(err).Msg("Checkout flow already closed")
		return
	}
	metrics.CheckoutFailed(string(reason))
}

func (s *CheckoutService) saveState(ctx context.Context, attempt *models.CheckoutAttempt, flow *checkout.Flow) {
	var reason *string
	if r := flow.Reason(); r != "" {
		str := string(r)
		reason = &str
	}
	if err := s.attempts.UpdateState(ctx, attempt.ID, string(flow.State()), reason); err != nil {
		s.logger.Warn().Err(err).Str("attemptID", attempt.ID.String()).Str("state", string(flow.State())).Msg("Failed to save checkout state")
		return
	}
	attempt.State = string(flow.State())
	attempt.FailureReason = reason
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt {{.TransactionID}}</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>JavaMaster receipt</h2>
	<table>
		<tr><td>Student</td><td>{{.StudentName}} ({{.StudentEmail}})</td></tr>
		<tr><td>Course</td><td>{{.CourseTitle}}</td></tr>
		<tr><td>Amount paid</td><td>INR {{.Amount}}</td></tr>
		<tr><td>Transaction</td><td>{{.TransactionID}}</td></tr>
		<tr><td>Gateway order</td><td>{{.GatewayOrderID}}</td></tr>
		<tr><td>Purchased on</td><td>{{.PurchaseDate}}</td></tr>
		<tr><td>Status</td><td>{{.Status}}</td></tr>
	</table>
</body>
</html>
`))

func renderReceipt(order *models.Order, student *models.Student) ([]byte, error) {
	data := map[string]string{
		"StudentName":    student.FullName,
		"StudentEmail":   student.Email,
		"Amount":         order.AmountPaid.StringFixed(2),
		"TransactionID":  order.TransactionID,
		"GatewayOrderID": order.GatewayOrderID,
		"PurchaseDate":   order.PurchaseDate.Format("02 Jan 2006 15:04 MST"),
		"Status":         string(order.PaymentStatus),
	}
	if order.Course != nil {
		data["CourseTitle"] = order.Course.Title
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
