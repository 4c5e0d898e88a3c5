package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
)

// OrderEvent is the payload of a TopicOrders message
type OrderEvent struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	CourseID      string `json:"courseId"`
	CourseTitle   string `json:"courseTitle"`
	StudentName   string `json:"studentName"`
	StudentEmail  string `json:"studentEmail"`
	Amount        string `json:"amount"`
	PurchaseDate  string `json:"purchaseDate"`
}

// OrderPublisher turns recorded orders into feed messages
type OrderPublisher struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewOrderPublisher creates a publisher for the hub
func NewOrderPublisher(hub *Hub, logger zerolog.Logger) *OrderPublisher {
	return &OrderPublisher{hub: hub, logger: logger}
}

// PublishOrder broadcasts a completed order to the admins watching the feed
func (p *OrderPublisher) PublishOrder(order *models.Order, course *models.Course, student *models.Student) {
	event := OrderEvent{
		OrderID:       order.ID.String(),
		TransactionID: order.TransactionID,
		CourseID:      order.CourseID.String(),
		Amount:        order.AmountPaid.StringFixed(2),
		PurchaseDate:  order.PurchaseDate.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if course != nil {
		event.CourseTitle = course.Title
	}
	if student != nil {
		event.StudentName = student.FullName
		event.StudentEmail = student.Email
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("transactionID", order.TransactionID).Msg("Failed to encode order event")
		return
	}
	p.hub.Publish(&Message{Type: "order.completed", Topic: TopicOrders, Payload: payload})
}
