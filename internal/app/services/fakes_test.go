package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/email"
	"github.com/yigit/javamaster/internal/pkg/gateway"
)

// memDB is an in-memory stand-in for the postgres tables
type memDB struct {
	mu       sync.Mutex
	students map[uuid.UUID]*models.Student
	admins   map[string]*models.AdminUser
	courses  map[uuid.UUID]*models.Course
	orders   []*models.Order
	attempts map[uuid.UUID]*models.CheckoutAttempt
	tokens   map[string]uuid.UUID
}

func newMemDB() *memDB {
	return &memDB{
		students: make(map[uuid.UUID]*models.Student),
		admins:   make(map[string]*models.AdminUser),
		courses:  make(map[uuid.UUID]*models.Course),
		attempts: make(map[uuid.UUID]*models.CheckoutAttempt),
		tokens:   make(map[string]uuid.UUID),
	}
}

func (m *memDB) addCourse(title string, price int64, available, reserved int) *models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Course{
		ID:              uuid.New(),
		Title:           title,
		OriginalPrice:   decimal.NewFromInt(price * 5),
		DiscountedPrice: decimal.NewFromInt(price),
		SeatsAvailable:  available,
		SeatsReserved:   reserved,
		BatchStartDate:  time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
	}
	m.courses[c.ID] = c
	return c
}

func (m *memDB) addStudent(email string) *models.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.Student{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Asha Rao",
		CollegeName:  "PES University",
		Year:         "2nd Year",
		MobileNumber: "9876543210",
		CreatedAt:    time.Now(),
	}
	m.students[s.ID] = s
	return s
}

func (m *memDB) seatsReserved(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.courses[id].SeatsReserved
}

func (m *memDB) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memStudents struct {
	*memDB
	// hiddenReads makes GetByID miss this many times after Create
	hiddenReads int
}

func (s *memStudents) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	student.ID = uuid.New()
	student.CreatedAt = time.Now()
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *memStudents) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hiddenReads > 0 {
		s.hiddenReads--
		return nil, apperrors.ErrStudentNotFound
	}
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *memStudents) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, student := range s.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *memStudents) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.students)), nil
}

func (s *memStudents) List(_ context.Context, offset, limit uint64) ([]*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		all = append(all, student)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset >= uint64(len(all)) {
		return []*models.Student{}, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], nil
}

type memAdmins struct{ *memDB }

func (a *memAdmins) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	admin, ok := a.admins[email]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	return admin, nil
}

type memCourses struct{ *memDB }

func (c *memCourses) List(context.Context) ([]*models.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.Course, 0, len(c.courses))
	for _, course := range c.courses {
		copied := *course
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (c *memCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (c *memCourses) Count(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.courses)), nil
}

type memOrders struct {
	*memDB
	failInsert error
}

// RecordWithSeat mirrors the repository transaction: insert, then the conditional seat update
func (o *memOrders) RecordWithSeat(_ context.Context, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failInsert != nil {
		return o.failInsert
	}
	for _, existing := range o.orders {
		if existing.TransactionID == order.TransactionID {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	course, ok := o.courses[order.CourseID]
	if !ok || course.SeatsReserved >= course.SeatsAvailable {
		return apperrors.ErrCapacityExceeded
	}
	course.SeatsReserved++

	order.ID = uuid.New()
	if order.PurchaseDate.IsZero() {
		order.PurchaseDate = time.Now()
	}
	copied := *order
	o.orders = append(o.orders, &copied)
	return nil
}

func (o *memOrders) withCourse(order *models.Order) *models.Order {
	copied := *order
	if course, ok := o.courses[order.CourseID]; ok {
		c := *course
		copied.Course = &c
	}
	return &copied
}

func (o *memOrders) GetByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range o.orders {
		if order.TransactionID == transactionID {
			return o.withCourse(order), nil
		}
	}
	return nil, apperrors.ErrOrderNotFound
}

func (o *memOrders) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*models.Order, 0)
	for i := len(o.orders) - 1; i >= 0; i-- {
		if o.orders[i].StudentID == studentID {
			out = append(out, o.withCourse(o.orders[i]))
		}
	}
	return out, nil
}

func (o *memOrders) ListCompletedWithDetails(_ context.Context, limit uint64) ([]*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*models.Order, 0)
	for i := len(o.orders) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		order := o.withCourse(o.orders[i])
		if student, ok := o.students[order.StudentID]; ok {
			s := *student
			order.Student = &s
		}
		out = append(out, order)
	}
	return out, nil
}

func (o *memOrders) RevenueTotals(context.Context) (decimal.Decimal, int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	total := decimal.Zero
	for _, order := range o.orders {
		total = total.Add(order.AmountPaid)
	}
	return total, int64(len(o.orders)), nil
}

func (o *memOrders) RevenueByDay(_ context.Context, since time.Time) ([]models.RevenuePoint, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	byDay := map[string]*models.RevenuePoint{}
	keys := []string{}
	for _, order := range o.orders {
		if order.PurchaseDate.Before(since) {
			continue
		}
		key := order.PurchaseDate.UTC().Format(time.DateOnly)
		p, ok := byDay[key]
		if !ok {
			day, _ := time.ParseInLocation(time.DateOnly, key, time.UTC)
			p = &models.RevenuePoint{Day: day, Revenue: decimal.Zero}
			byDay[key] = p
			keys = append(keys, key)
		}
		p.Revenue = p.Revenue.Add(order.AmountPaid)
		p.Orders++
	}
	sort.Strings(keys)
	out := make([]models.RevenuePoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byDay[k])
	}
	return out, nil
}

func (o *memOrders) CountCompleted(context.Context) (int64, error) {
	return int64(o.orderCount()), nil
}

type memAttempts struct{ *memDB }

func (a *memAttempts) Create(_ context.Context, attempt *models.CheckoutAttempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	attempt.ID = uuid.New()
	attempt.CreatedAt = time.Now()
	attempt.UpdatedAt = attempt.CreatedAt
	copied := *attempt
	a.attempts[attempt.ID] = &copied
	return nil
}

func (a *memAttempts) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.CheckoutAttempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, attempt := range a.attempts {
		if attempt.GatewayOrderID == gatewayOrderID {
			copied := *attempt
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCheckoutNotFound
}

func (a *memAttempts) UpdateState(_ context.Context, id uuid.UUID, state string, reason *string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	attempt, ok := a.attempts[id]
	if !ok {
		return apperrors.ErrCheckoutNotFound
	}
	attempt.State = state
	attempt.FailureReason = reason
	return nil
}

func (a *memAttempts) CountByState(_ context.Context, state string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var n int64
	for _, attempt := range a.attempts {
		if attempt.State == state {
			n++
		}
	}
	return n, nil
}

func (a *memAttempts) stateOf(gatewayOrderID string) (string, *string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, attempt := range a.attempts {
		if attempt.GatewayOrderID == gatewayOrderID {
			return attempt.State, attempt.FailureReason
		}
	}
	return "", nil
}

type memTokens struct{ *memDB }

func (t *memTokens) CreateToken(_ context.Context, token string, studentID uuid.UUID, _ time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[token] = studentID
	return nil
}

func (t *memTokens) GetStudentIDByToken(_ context.Context, token string) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.tokens[token]
	if !ok {
		return uuid.Nil, apperrors.ErrTokenNotFound
	}
	return id, nil
}

func (t *memTokens) RevokeToken(_ context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(t.tokens, token)
	return nil
}

func (t *memTokens) RevokeAllStudentTokens(_ context.Context, studentID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for token, id := range t.tokens {
		if id == studentID {
			delete(t.tokens, token)
		}
	}
	return nil
}

// fakeGateway hands out sequential order ids and accepts "sig:<order>|<payment>" signatures
type fakeGateway struct {
	mu        sync.Mutex
	seq       int
	nextID    string
	err       error
	amountOff int64
	created   []*gateway.GatewayOrder
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*gateway.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	id := g.nextID
	if id == "" {
		g.seq++
		id = fmt.Sprintf("order_%d", g.seq)
	}
	g.nextID = ""
	order := &gateway.GatewayOrder{
		ID:       id,
		Amount:   amountMinor + g.amountOff,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	g.created = append(g.created, order)
	return order, nil
}

func (g *fakeGateway) VerifyPayment(orderID, paymentID, signature string) bool {
	return signature == signFor(orderID, paymentID)
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func signFor(orderID, paymentID string) string {
	return "sig:" + orderID + "|" + paymentID
}

// mockMailer records outgoing mail through testify's mock
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	return m.Called(ctx, toEmail, toName).Error(0)
}

func (m *mockMailer) SendOrderConfirmation(ctx context.Context, toEmail, toName string, receipt email.OrderReceipt) error {
	return m.Called(ctx, toEmail, toName, receipt).Error(0)
}

type memReceipts struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemReceipts() *memReceipts {
	return &memReceipts{files: make(map[string][]byte)}
}

func (r *memReceipts) SaveBytes(subPath, name string, data []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	url := r.URL(subPath, name)
	r.files[url] = data
	return url, nil
}

func (r *memReceipts) URL(subPath, name string) string {
	return "/uploads/" + subPath + "/" + name
}

func (r *memReceipts) Exists(fileURL string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.files[fileURL]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	orders []string
}

func (p *recordingPublisher) PublishOrder(order *models.Order, _ *models.Course, _ *models.Student) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order.TransactionID)
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.orders...)
}
